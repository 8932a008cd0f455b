package service

import "strings"

// PageSize is the fixed number of records per listing page.
const PageSize = 10

// Filter keeps the items for which it returns true.
type Filter[T any] func(T) bool

// Page is one window of a filtered collection. Total counts every item
// that passed the filters, not just the ones in Items.
type Page[T any] struct {
	Number int
	Total  int
	Items  []T
}

// NormalizePage clamps page numbers below 1 to 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Paginate applies filters conjunctively, then windows the result.
// Items keep the order they arrived in.
func Paginate[T any](items []T, page int, filters ...Filter[T]) Page[T] {
	page = NormalizePage(page)

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item, filters) {
			matched = append(matched, item)
		}
	}

	result := Page[T]{Number: page, Total: len(matched), Items: []T{}}
	// compare page counts so huge page numbers cannot overflow the offset
	if page-1 >= (len(matched)+PageSize-1)/PageSize {
		return result
	}
	skip := (page - 1) * PageSize
	end := min(skip+PageSize, len(matched))
	result.Items = matched[skip:end]
	return result
}

func keep[T any](item T, filters []Filter[T]) bool {
	for _, f := range filters {
		if f != nil && !f(item) {
			return false
		}
	}
	return true
}

// ContainsFilter matches items whose field contains needle. An empty needle
// yields a nil filter, which Paginate ignores.
func ContainsFilter[T any](needle string, field func(T) string) Filter[T] {
	if needle == "" {
		return nil
	}
	return func(item T) bool {
		return strings.Contains(field(item), needle)
	}
}

// MatchNone rejects every item.
func MatchNone[T any]() Filter[T] {
	return func(T) bool { return false }
}
