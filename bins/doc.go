// Package bins accumulates detector hits on a rectangular grid of bins.
//
// A Grid owns BinsX x BinsY interior bins plus a frame of one bin on each side,
// so that neighbour lookups at the edge of the window stay inside the storage.
// Each Bin keeps the signal values filled into it; the Grid additionally keeps
// a hit-count and a total-signal surface from which the mean-signal Surface is
// derived on demand.
//
// Statistics are computed from the state at the time of the call. Nothing is
// recomputed as more data arrive, so derived values read before the last Fill
// describe a partial data set.
package bins
