// Package patchscout embeds the PatchScout engine in a Go program: lexical
// (BM25) and semantic search over a corpus of patch notes, category
// prediction, and retrieval evaluation.
//
// # From a file
//
//	client, _ := patchscout.Open(ctx, "patch_notes.csv")
//	hits, _ := client.Search(ctx, "blowpipe nerf", patchscout.SearchOptions{Label: "Combat"})
//	label, _ := client.Predict(ctx, "Fixed a crash when opening the bank")
//
// # From memory
//
//	client, _ := patchscout.New(ctx, []patchscout.Record{
//	    {Text: "Forestry woodcutting events added", Label: "XP/Progression"},
//	    {Text: "Blowpipe dart damage nerfed", Label: "Combat Balance"},
//	}, patchscout.WithEmbedder(myEmbedder))
//
// Without WithEmbedder the client uses a local feature-hashing embedder that
// needs no network access.
package patchscout
