package enforce

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ENFORCE helper to halt program on error
func ENFORCE(query interface{}, args ...interface{}) {
	switch t := query.(type) {
	case bool:
		{
			if !t {
				log.Error().Msg("ENFORCE: " + fmt.Sprint(args...))
				panic(0)
			}
		}
	case error:
		{
			if t != nil {
				log.Error().Msg("ENFORCE: " + fmt.Sprint(args...))
				panic(t)
			}
		}
	case string:
		{
			log.Error().Msg("ENFORCE: " + t + " " + fmt.Sprint(args...))
			panic(t)
		}
	case nil:
		// Allow nil to pass since we sometimes do enforce.ENFORCE(err) to ensure there is no error
		break
	default:
		log.Error().Msg("ENFORCE: incorrect usage of enforce with type: " + fmt.Sprintf("%T", t) + " - " + fmt.Sprint(t) + " - " + fmt.Sprint(args...))
		panic(t)
	}
}
