package main

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/talagrand/CsWinRT/concurrent"
	"github.com/talagrand/CsWinRT/enforce"
	"github.com/talagrand/CsWinRT/utils"
)

// Workload describes one stress configuration.
type Workload struct {
	Threads   int  `yaml:"threads"`
	PerThread int  `yaml:"perThread"`
	Rounds    int  `yaml:"rounds"`
	Overlap   bool `yaml:"overlap"`
}

func DefaultWorkload() Workload {
	return Workload{Rounds: 10, PerThread: 100000}
}

func LoadWorkload(path string) (w Workload, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	err = yaml.Unmarshal(data, &w)
	return w, err
}

// RunRound forks Threads goroutines accumulating into the shared map and set,
// joins them, consumes once, and verifies nothing was lost. Returns the
// accumulation time. The overall watch is paused around setup and
// verification so it tracks pure accumulation time.
func (w Workload) RunRound(overall *utils.Watch, cm *concurrent.Map[string, int], cs *concurrent.Set[string], round int) time.Duration {
	overall.Pause()
	keys := make([][]string, w.Threads)
	for t := range keys {
		keys[t] = make([]string, w.PerThread)
		for i := range keys[t] {
			if w.Overlap {
				keys[t][i] = "key" + strconv.Itoa(i)
			} else {
				keys[t][i] = "thread" + strconv.Itoa(t) + "-" + strconv.Itoa(i)
			}
		}
		utils.Shuffle(keys[t]) // vary lock-contention interleavings between rounds
	}
	overall.UnPause()

	var rw utils.Watch
	rw.Start()

	var wg sync.WaitGroup
	wg.Add(w.Threads)
	for t := 0; t < w.Threads; t++ {
		go func(t int) {
			defer wg.Done()
			for i, k := range keys[t] {
				cm.InsertOrAssign(k, t*w.PerThread+i)
				cs.Insert(k)
			}
		}(t)
	}
	wg.Wait() // the join barrier; consuming is safe from here

	took := rw.Elapsed()

	overall.Pause()
	w.verify(cm, cs, keys, round)
	overall.UnPause()
	return took
}

func (w Workload) verify(cm *concurrent.Map[string, int], cs *concurrent.Set[string], keys [][]string, round int) {
	expect := w.Threads * w.PerThread
	if w.Overlap {
		expect = w.PerThread
	}

	gotMap := cm.Consume()
	gotSet := cs.Consume()
	enforce.ENFORCE(len(gotMap) == expect, "round ", round, ": map entries ", len(gotMap), " != ", expect)
	enforce.ENFORCE(len(gotSet) == expect, "round ", round, ": set entries ", len(gotSet), " != ", expect)

	for t := range keys {
		for i, k := range keys[t] {
			v, ok := gotMap[k]
			enforce.ENFORCE(ok, "round ", round, ": map lost key ", k)
			if !w.Overlap {
				enforce.ENFORCE(v == t*w.PerThread+i, "round ", round, ": map corrupted key ", k)
			}
			_, ok = gotSet[k]
			enforce.ENFORCE(ok, "round ", round, ": set lost key ", k)
		}
	}

	enforce.ENFORCE(cm.Empty() && cs.Empty(), "round ", round, ": containers not drained")
	log.Debug().Msg("Round " + utils.V(round) + " verified " + utils.V(expect) + " entries")
}
