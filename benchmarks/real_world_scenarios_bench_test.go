package slab_test

import (
	"sync"
	"testing"

	"github.com/pavanmanishd/slab"
)

type requestState struct {
	id      int64
	status  int32
	flags   int32
	started int64
	bytes   int64
}

// BenchmarkWebServerScenarios simulates per-request scratch objects.
func BenchmarkWebServerScenarios(b *testing.B) {
	a, err := slab.New(slab.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.Run("HTTPRequestHandler", func(b *testing.B) {
		b.Run("Slab", func(b *testing.B) {
			c := a.NewCache()
			defer c.Close()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				state := slab.Alloc[requestState](c)
				body := slab.AllocSlice[byte](c, 1024)
				offsets := slab.AllocSlice[int64](c, 50)

				state.id = int64(i)
				body[0] = 1
				offsets[0] = 3

				slab.FreeSlice(c, offsets)
				slab.FreeSlice(c, body)
				slab.Free(c, state)
			}
		})

		b.Run("Builtin", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				state := new(requestState)
				body := make([]byte, 1024)
				offsets := make([]int64, 50)

				state.id = int64(i)
				body[0] = 1
				offsets[0] = 3
			}
		})
	})
}

// BenchmarkConcurrentWorkloadScenarios runs a fixed worker pool per
// iteration.
func BenchmarkConcurrentWorkloadScenarios(b *testing.B) {
	a, err := slab.New(slab.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.Run("WorkerPoolPattern", func(b *testing.B) {
		const numWorkers = 8
		const jobsPerWorker = 100

		run := func(b *testing.B, job func(workerID, j int)) {
			for i := 0; i < b.N; i++ {
				var wg sync.WaitGroup
				wg.Add(numWorkers)
				for w := 0; w < numWorkers; w++ {
					go func(workerID int) {
						defer wg.Done()
						for j := 0; j < jobsPerWorker; j++ {
							job(workerID, j)
						}
					}(w)
				}
				wg.Wait()
			}
		}

		b.Run("Slab_PerWorker", func(b *testing.B) {
			caches := make([]*slab.Cache, numWorkers)
			for i := range caches {
				caches[i] = a.NewCache()
				defer caches[i].Close()
			}
			b.ResetTimer()
			run(b, func(workerID, j int) {
				c := caches[workerID]
				buffer := slab.AllocSlice[byte](c, 512)
				result := slab.Alloc[int64](c)
				buffer[0] = byte(workerID)
				*result = int64(workerID*jobsPerWorker + j)
				slab.Free(c, result)
				slab.FreeSlice(c, buffer)
			})
		})

		b.Run("SharedCache", func(b *testing.B) {
			s := a.NewSharedCache()
			defer s.Close()
			b.ResetTimer()
			run(b, func(workerID, j int) {
				buffer := slab.AllocSlice[byte](s, 512)
				result := slab.Alloc[int64](s)
				buffer[0] = byte(workerID)
				*result = int64(workerID*jobsPerWorker + j)
				slab.Free(s, result)
				slab.FreeSlice(s, buffer)
			})
		})

		b.Run("Allocator_Shards", func(b *testing.B) {
			b.ResetTimer()
			run(b, func(workerID, j int) {
				buffer := slab.AllocSlice[byte](a, 512)
				result := slab.Alloc[int64](a)
				buffer[0] = byte(workerID)
				*result = int64(workerID*jobsPerWorker + j)
				slab.Free(a, result)
				slab.FreeSlice(a, buffer)
			})
		})

		b.Run("Builtin", func(b *testing.B) {
			run(b, func(workerID, j int) {
				buffer := make([]byte, 512)
				result := new(int64)
				buffer[0] = byte(workerID)
				*result = int64(workerID*jobsPerWorker + j)
			})
		})
	})
}
