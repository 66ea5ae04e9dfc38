package lower

// maxFixpointIterations bounds every lowering pass that iterates to a
// fixpoint (array/tuple comparison expansion, array/tuple
// scalarization). Exceeding it is an internal error (spec.md §4.3
// "Infinite-loop guard").
const maxFixpointIterations = 10000
