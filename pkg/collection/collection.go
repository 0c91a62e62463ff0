// Package collection holds the generic slice helpers used around the
// catalog and digest code.
//
//	ids := collection.Map(items, func(i models.OrderItem) uint { return i.ProductID })
//	low := collection.Filter(products, func(p models.Product) bool { return p.Quantity < 5 })
package collection

import "sort"

// Map transforms each element of s through fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	result := make([]R, len(s))
	for i := range s {
		result[i] = fn(s[i])
	}
	return result
}

// Filter keeps the elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var result []T
	for _, item := range s {
		if fn(item) {
			result = append(result, item)
		}
	}
	return result
}

// First returns the first element matching fn, or (zero, false) when none
// matches.
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, item := range s {
		if fn(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// GroupBy partitions s by the string key fn produces.
func GroupBy[T any](s []T, fn func(T) string) map[string][]T {
	groups := make(map[string][]T)
	for _, item := range s {
		key := fn(item)
		groups[key] = append(groups[key], item)
	}
	return groups
}

// Unique drops duplicate elements, keeping first-seen order.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	var result []T
	for _, item := range s {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// KeyBy indexes s by the key fn produces. Later elements overwrite
// earlier ones on key collision.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	index := make(map[K]T, len(s))
	for _, item := range s {
		index[fn(item)] = item
	}
	return index
}

// Chunk splits s into consecutive slices of at most n elements. n <= 0
// yields nil.
func Chunk[T any](s []T, n int) [][]T {
	if n <= 0 {
		return nil
	}
	var chunks [][]T
	for start := 0; start < len(s); start += n {
		end := start + n
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[start:end])
	}
	return chunks
}

// SortBy sorts s in place by less and returns it for chaining.
func SortBy[T any](s []T, less func(a, b T) bool) []T {
	sort.Slice(s, func(i, j int) bool { return less(s[i], s[j]) })
	return s
}

// Reduce folds s left-to-right into a single value, starting from initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, item := range s {
		carry = fn(carry, item)
	}
	return carry
}

// Sum totals the float64 values fn extracts from each element.
func Sum[T any](s []T, fn func(T) float64) float64 {
	return Reduce(s, 0.0, func(acc float64, item T) float64 { return acc + fn(item) })
}
