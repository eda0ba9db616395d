// Command slabctl inspects slab allocator configurations and runs a
// contention smoke test against them.
package main

func main() {
	execute()
}
