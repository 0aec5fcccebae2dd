// Profiling:
// go build ./profile/query
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.prof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/edwinsyarief/lazymesh"
)

func main() {
	// CPU Profiling
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	rounds := 10
	iters := 100
	grid := 300
	run(rounds, iters, grid)

	// Memory Profiling
	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC() // Trigger garbage collection
	_ = pprof.WriteHeapProfile(memFile)
}

// run builds an n x n quad grid as a polygon mesh and repeatedly
// recomputes face normals and walks the faces with the filter cursor.
func run(rounds, iters, n int) {
	for range rounds {
		m := lazymesh.NewPolyMesh(lazymesh.Options{Capacity: (n + 1) * (n + 1)})
		verts := lazymesh.MustContainerOf[lazymesh.PolyMeshVertex](m)
		faces := lazymesh.MustContainerOf[lazymesh.PolyMeshFace](m)
		verts.AddElements((n + 1) * (n + 1))
		for i, v := range verts.All() {
			*v.Coord() = lazymesh.Point3{float32(i % (n + 1)), float32(i / (n + 1)), float32(i%7) * 0.1}
		}
		b, _ := lazymesh.NewFaceBuilder(faces)
		for y := range n {
			for x := range n {
				v := y*(n+1) + x
				_, _ = b.AddFace(v, v+1, v+n+2, v+n+1)
			}
		}
		for range iters {
			_ = lazymesh.UpdateFaceNormals(m)
			q := faces.Filter(0)
			var sum lazymesh.Point3
			for q.Next() {
				sum = sum.Add(*q.Get().Normal())
			}
			_ = sum
		}
	}
}
