// Package procgen generates reproducible spiral-galaxy point fields.
//
// Everything in this package is driven by a single injected uniform stream
// (Source). A Rand seeded with the same value always yields the same stream,
// so Generate called twice with fresh, identically seeded streams returns the
// same points in the same order: the core block, then the outer-core block,
// then one block per arm in ascending arm order.
//
// The pieces compose as follows:
//
//   - Rand: Mulberry32 generator over a single uint32 state word.
//   - GaussianRandom: Box-Muller transform over two draws of a Source.
//   - Shape.Spiral: maps an offset onto a logarithmic spiral arm.
//   - Generate: places core, outer-core and arm clusters and hands each
//     position to a caller-supplied factory.
//   - WeightedTable: inverse-CDF pick from a weight table.
//
// None of the functions here return errors. A Rand must not be shared between
// goroutines; generation is a single sequential pass.
package procgen
