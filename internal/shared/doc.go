// Package shared holds code used across packages that belongs to no single
// layer. Its testutil subpackage provides the buffered slog handler and the
// record fixtures the package tests share.
package shared
