package commands

// PurgeSurfaceCache forgets every cached surface.
func PurgeSurfaceCache() {
	surfaceCache.Purge()
}
