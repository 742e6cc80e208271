// Package router holds the console's static page table: path to page, lazily
// constructed, with navigation metadata and a root redirect.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/okian/smarthrm/pkg/metrics"
	"github.com/samber/lo"
)

// Page renders one route.
type Page = http.Handler

// Loader builds a Page. It runs on first navigation only.
type Loader func() Page

// Meta is navigation metadata.
type Meta struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Entry declares one route.
type Entry struct {
	Path   string
	Name   string
	Loader Loader
	Meta   Meta
}

// NavItem is the navigation view of an Entry.
type NavItem struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Meta
}

type slot struct {
	entry Entry
	once  sync.Once
	page  Page
	err   error
}

// load builds the page once. A loader that panics or returns nil leaves the
// slot failed for every later call.
func (s *slot) load() (Page, error) {
	s.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				s.page = nil
				s.err = fmt.Errorf("%w: %s: loader panicked: %v", ErrPageUnavailable, s.entry.Path, r)
			}
		}()
		if s.page = s.entry.Loader(); s.page == nil {
			s.err = fmt.Errorf("%w: %s: loader returned no page", ErrPageUnavailable, s.entry.Path)
			return
		}
		metrics.RecordPageLoad(s.entry.Name)
	})
	return s.page, s.err
}

// Table is immutable after NewTable; page construction is safe for concurrent use.
type Table struct {
	redirect string
	slots    []*slot
	byPath   map[string]*slot
}

// NewTable validates entries and builds a Table whose root redirects to redirect.
func NewTable(redirect string, entries ...Entry) (*Table, error) {
	for i, e := range entries {
		switch {
		case e.Path == "" || e.Path[0] != '/':
			return nil, fmt.Errorf("%w: entry %d: path %q must start with /", ErrInvalidTable, i, e.Path)
		case e.Path == "/":
			return nil, fmt.Errorf("%w: entry %d: root is reserved for the redirect", ErrInvalidTable, i)
		case e.Name == "":
			return nil, fmt.Errorf("%w: entry %d: empty name", ErrInvalidTable, i)
		case e.Loader == nil:
			return nil, fmt.Errorf("%w: %s: nil loader", ErrInvalidTable, e.Path)
		}
	}
	if dup := lo.FindDuplicatesBy(entries, func(e Entry) string { return e.Path }); len(dup) > 0 {
		return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalidTable, dup[0].Path)
	}
	if dup := lo.FindDuplicatesBy(entries, func(e Entry) string { return e.Name }); len(dup) > 0 {
		return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidTable, dup[0].Name)
	}

	t := &Table{redirect: redirect, byPath: make(map[string]*slot, len(entries))}
	for _, e := range entries {
		s := &slot{entry: e}
		t.slots = append(t.slots, s)
		t.byPath[e.Path] = s
	}
	if _, ok := t.byPath[redirect]; !ok {
		return nil, fmt.Errorf("%w: redirect target %q is not declared", ErrInvalidTable, redirect)
	}
	return t, nil
}

// Redirect returns the root redirect target.
func (t *Table) Redirect() string {
	return t.redirect
}

// Resolve returns the entry for path. The root resolves to the redirect target.
func (t *Table) Resolve(path string) (Entry, error) {
	if path == "/" || path == "" {
		path = t.redirect
	}
	s, ok := t.byPath[path]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return s.entry, nil
}

// Page returns the page for path, constructing it on first use.
func (t *Table) Page(path string) (Page, error) {
	if path == "/" || path == "" {
		path = t.redirect
	}
	s, ok := t.byPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return s.load()
}

// Nav returns navigation items in declaration order.
func (t *Table) Nav() []NavItem {
	return lo.Map(t.slots, func(s *slot, _ int) NavItem {
		return NavItem{Path: s.entry.Path, Name: s.entry.Name, Meta: s.entry.Meta}
	})
}

// ServeHTTP redirects the root and serves declared pages. Unknown paths get 404
// and pages that failed to load get 500.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		http.Redirect(w, r, t.redirect, http.StatusFound)
		return
	}
	page, err := t.Page(r.URL.Path)
	switch {
	case errors.Is(err, ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	page.ServeHTTP(w, r)
}
