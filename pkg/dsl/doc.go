/*
Package dsl provides a fluent Go DSL for declaring automata in code.

It is the programmatic alternative to definition files: states, symbols and
transitions are declared on the fly and validated once, when Build is called.

Example usage:

	b := dsl.New("ends-in-01")

	b.State("s0").Initial().
		On("0", "s1").
		On("1", "s0")

	b.State("s1").
		On("0", "s1").
		On("1", "s2")

	b.State("s2").Accepting().
		On("0", "s1").
		On("1", "s0")

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// Or serve it through any port that expects a ports.DefinitionLoader.
	loader, err := b.Loader()
*/
package dsl
