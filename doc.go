// Package aspecter provides a weighted path recommendation library over a
// directed recipe graph of aspects.
//
// An aspect is an atomic unit with a name, a provenance tag and a base
// value. Recipes combine two component aspects into a composite. Aspecter
// loads aspects, recipes and held quantities from a store (SQLite, Neo4j or
// in-memory), builds an immutable graph snapshot, and ranks the simple
// paths connecting two aspects by how cheaply they can be walked given the
// caller's current holdings.
//
// # Basic Usage
//
// Create a client over a store and load the graph:
//
//	st, err := store.OpenSQLite("aspects.sqlite3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//
//	client, err := aspecter.New(st, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Load(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Recommending Paths
//
// Recommend returns every simple path between two aspects, heaviest first.
// A path's weight grows with the quantities already held along it, so the
// top result is the connection the caller can demonstrate most cheaply:
//
//	paths, err := client.Recommend(ctx, "Aer", "Lux")
//	for _, p := range paths {
//		fmt.Println(p.Path.Key(), p.FinalWeight)
//	}
//
// # Cracking Composites
//
// Crack decomposes composite aspects into the primary aspects they are
// ultimately made of:
//
//	primaries, err := client.Crack(map[string]float64{"Lux": 2})
package aspecter
