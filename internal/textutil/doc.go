// Package textutil provides string similarity and token helpers shared by
// fusion and the CLI.
//
// Similarity combines a Levenshtein edit ratio with a token-sorted ratio so
// that reordered titles ("Robotică și Mecatronică") still match. Inputs are
// expected to be folded keys from internal/textnorm.
package textutil
