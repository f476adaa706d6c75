// Package extrema finds local maxima and minima of a mean-signal surface by
// letting several independent scans vote on every bin.
//
// A run goes Reset, then one or more scans, then consensus extraction:
//
//	th := extrema.DeriveThresholds(surface)
//	e := extrema.NewEngine(surface, th, 5)
//	e.Run(extrema.DefaultScanners()...)
//	peaks := e.BinsWithVotes(extrema.Maxima, 5, 5)
//
// The binary line and window scans vote into one map; the graded region scan
// votes into a map of its own.
package extrema
