package domain

// GameEntry is one playable game discovered by a catalog scan. Entries are
// derived fresh on every scan and never persisted; identity is
// (System, Name) within a scan.
type GameEntry struct {
	// System is the platform id the entry belongs to.
	System string `json:"system"`
	// Name is the filename stem, shared by all files of a multi-file image.
	Name string `json:"name"`
	// File is the filename the client loads. For a .bin with a sibling .cue
	// this is the .cue; otherwise it is the matched file itself.
	File string `json:"file"`
	// Desc comes from a metadata sidecar or gamelist.xml, empty otherwise.
	Desc string `json:"desc"`
	// Size is the byte size of File on disk.
	Size int64 `json:"size"`
}
