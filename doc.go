// Package spellduel finds the cheapest way to win a turn-based spell duel:
// a caster with hit points and mana faces a defender with hit points and a
// fixed strike, and every spell costs mana.
//
// What is in the module?
//
//	duel/      state, spell catalog, effect resolution, legal moves, transitions
//	search/    minimum-cost search: FIFO branch-and-bound, best-first, parallel
//	scenario/  defender descriptors ("Hit Points: 58") and YAML scenario files
//	cmd/       the spellduel command line tool
//
// Quick example:
//
//	rules, _ := duel.NewRules(duel.DefaultCatalog(), 0)
//	start := duel.Setup{HP: 50, Mana: 500, DefenderHP: 58, DefenderDamage: 9}.Initial()
//	res, _ := search.MinCost(rules, start)
//	fmt.Println(res) // 1269
//
// The library packages never log and never spawn goroutines unless asked to
// with search.WithWorkers.
//
//	go install github.com/katalvlaran/spellduel/cmd/spellduel@latest
package spellduel
