// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/edwinsyarief/lazymesh"
	"github.com/pkg/profile"
)

func main() {
	rounds := 20
	iters := 200
	faces := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, faces)
	p.Stop()
}

// run grows a triangle strip, deletes every other face and compacts, so
// that the compaction rebase of face adjacency dominates the profile.
func run(rounds, iters, numFaces int) {
	for range rounds {
		m := lazymesh.NewTriMesh(lazymesh.Options{Capacity: numFaces + 2})
		verts := lazymesh.MustContainerOf[lazymesh.TriMeshVertex](m)
		faces := lazymesh.MustContainerOf[lazymesh.TriMeshFace](m)
		_ = faces.Enable(lazymesh.AdjFacesKey)
		for range iters {
			v0 := verts.AddElements(numFaces + 2)
			f0 := faces.AddElements(numFaces)
			for i := range numFaces {
				refs := faces.Element(f0 + i).Vertices()
				refs.SetIndex(0, v0+i)
				refs.SetIndex(1, v0+i+1)
				refs.SetIndex(2, v0+i+2)
				adj := lazymesh.MustGet(faces, lazymesh.AdjFacesKey, f0+i)
				if i > 0 {
					adj.SetIndex(0, f0+i-1)
				}
				if i+1 < numFaces {
					adj.SetIndex(1, f0+i+1)
				}
			}
			for i := 0; i < numFaces; i += 2 {
				_ = faces.Delete(f0 + i)
			}
			m.Compact()
			m.Clear()
		}
	}
}
