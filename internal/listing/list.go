package listing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"adminconsole/internal/logger"
)

const DefaultPageSize = 10

var (
	ErrNotFound      = errors.New("item not found")
	ErrUnknownFilter = errors.New("unknown filter")
	ErrUnknownColumn = errors.New("unknown sort column")
	ErrUnknownTab    = errors.New("unknown tab")
	ErrNoConfirm     = errors.New("no action awaiting confirmation")
)

// Loader is the shared loading indicator.
type Loader interface {
	Show()
	Hide()
}

// Notifier receives user-facing messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type Config[T any] struct {
	Name  string
	Fetch func(ctx context.Context) ([]T, error)
	Key   func(item T) int64

	// Tab partitions the master list; nil disables tabs.
	Tab              func(item T) string
	ValidTab         func(tab string) bool
	DefaultTab       string
	ClearSearchOnTab bool

	Filters map[string]func(item T, value string) bool
	Search  func(item T) []string
	Columns map[string]func(item T) any

	DefaultSort Sorting
	PageSize    int
	Debounce    time.Duration

	Loader   Loader
	Notifier Notifier
}

// List owns the master dataset of one entity and derives the filtered,
// sorted and paginated view from it.
type List[T any] struct {
	cfg Config[T]

	mu         sync.Mutex
	items      []T
	mounted    bool
	tab        string
	filters    map[string]string
	search     string
	applied    string
	sorting    Sorting
	page       int
	confirm    *Confirmation
	generation uint64
	cancel     context.CancelFunc
	timer      *time.Timer
}

func New[T any](cfg Config[T]) *List[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Loader == nil {
		cfg.Loader = nopLoader{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = nopNotifier{}
	}
	return &List[T]{
		cfg:     cfg,
		tab:     cfg.DefaultTab,
		filters: map[string]string{},
		sorting: cfg.DefaultSort,
		page:    1,
	}
}

func (l *List[T]) Name() string {
	return l.cfg.Name
}

// Mount fetches the master list on first visit. Later calls are no-ops
// until Close unmounts the list.
func (l *List[T]) Mount(ctx context.Context) error {
	l.mu.Lock()
	if l.mounted {
		l.mu.Unlock()
		return nil
	}
	l.mounted = true
	l.mu.Unlock()

	return l.Refetch(ctx)
}

func (l *List[T]) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted
}

// Refetch replaces the master list. A newer fetch cancels the older one and
// only the latest non-aborted response is committed. On failure the
// previous data stays in place.
func (l *List[T]) Refetch(ctx context.Context) error {
	fetchCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	gen := l.generation
	l.cancel = cancel
	l.mounted = true
	l.mu.Unlock()

	l.cfg.Loader.Show()
	items, err := l.cfg.Fetch(fetchCtx)
	l.cfg.Loader.Hide()

	aborted := fetchCtx.Err() != nil || errors.Is(err, context.Canceled)
	cancel()

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		return nil
	}
	l.cancel = nil

	if err != nil && aborted {
		logger.Zlog.Debug("fetch aborted", zap.String("list", l.cfg.Name))
		return nil
	}
	if err != nil {
		logger.Zlog.Error("fetch failed", zap.String("list", l.cfg.Name), zap.Error(err))
		l.cfg.Notifier.Error(err.Error())
		return fmt.Errorf("fetch %s: %w", l.cfg.Name, err)
	}
	if aborted {
		return nil
	}

	if items == nil {
		items = []T{}
	}
	l.items = items
	return nil
}

// Close unmounts the list: the in-flight fetch is cancelled and pending
// debounced input is dropped. Data is kept until the next Mount refetches.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.mounted = false
	l.confirm = nil
}

// SetTab switches the active tab. Lists without tabs, or tabs rejected by
// ValidTab, answer ErrUnknownTab.
func (l *List[T]) SetTab(tab string) error {
	if l.cfg.Tab == nil || (l.cfg.ValidTab != nil && !l.cfg.ValidTab(tab)) {
		return fmt.Errorf("%w: %s", ErrUnknownTab, tab)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if tab == l.tab {
		return nil
	}
	l.tab = tab
	l.page = 1
	if l.cfg.ClearSearchOnTab {
		l.search = ""
		l.applied = ""
		if l.timer != nil {
			l.timer.Stop()
			l.timer = nil
		}
	}
	return nil
}

// SetFilter sets one named filter. An empty value clears it.
func (l *List[T]) SetFilter(name, value string) error {
	if _, ok := l.cfg.Filters[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.filters[name] == value {
		return nil
	}
	if value == "" {
		delete(l.filters, name)
	} else {
		l.filters[name] = value
	}
	l.page = 1
	return nil
}

func (l *List[T]) ClearFilters() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.filters) == 0 {
		return
	}
	l.filters = map[string]string{}
	l.page = 1
}

// SetSearch records the raw term. It is applied after the debounce quiet
// period, or at once when no debounce is configured.
func (l *List[T]) SetSearch(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if term == l.search {
		return
	}
	l.search = term

	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cfg.Debounce <= 0 {
		l.applySearchLocked(term)
		return
	}
	l.timer = time.AfterFunc(l.cfg.Debounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.search == term {
			l.applySearchLocked(term)
			l.timer = nil
		}
	})
}

// FlushSearch applies the pending search term without waiting for the
// debounce to elapse.
func (l *List[T]) FlushSearch() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.applySearchLocked(l.search)
}

func (l *List[T]) applySearchLocked(term string) {
	if term == l.applied {
		return
	}
	l.applied = term
	l.page = 1
}

// SortBy toggles the direction when key is already active, otherwise sorts
// ascending by key.
func (l *List[T]) SortBy(key string) error {
	if _, ok := l.cfg.Columns[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sorting = l.sorting.Toggle(key)
	l.page = 1
	return nil
}

func (l *List[T]) SetSort(key string, direction Direction) error {
	if _, ok := l.cfg.Columns[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if direction != Desc {
		direction = Asc
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := Sorting{Key: key, Direction: direction}
	if next == l.sorting {
		return nil
	}
	l.sorting = next
	l.page = 1
	return nil
}

// SetPage moves to page n, clamped into the available range.
func (l *List[T]) SetPage(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := TotalPages(len(l.deriveLocked()), l.cfg.PageSize)
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	l.page = n
}

type Page[T any] struct {
	Items         []T               `json:"items"`
	CurrentPage   int               `json:"currentPage"`
	TotalPages    int               `json:"totalPages"`
	TotalItems    int               `json:"totalItems"`
	PageSize      int               `json:"pageSize"`
	Sorting       Sorting           `json:"sorting"`
	Tab           string            `json:"tab,omitempty"`
	Filters       map[string]string `json:"filters"`
	Search        string            `json:"search"`
	AppliedSearch string            `json:"appliedSearch"`
	Confirm       *ConfirmView      `json:"confirm,omitempty"`
}

// View derives the current page. When the filtered list shrinks below the
// current page it clamps to the last page.
func (l *List[T]) View() Page[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	derived := l.deriveLocked()
	total := TotalPages(len(derived), l.cfg.PageSize)
	if l.page > total && total > 0 {
		l.page = total
	}

	filters := make(map[string]string, len(l.filters))
	for k, v := range l.filters {
		filters[k] = v
	}

	var confirm *ConfirmView
	if l.confirm != nil {
		confirm = &ConfirmView{Title: l.confirm.Title, Message: l.confirm.Message}
	}

	return Page[T]{
		Items:         Paginate(derived, l.page, l.cfg.PageSize),
		CurrentPage:   l.page,
		TotalPages:    total,
		TotalItems:    len(derived),
		PageSize:      l.cfg.PageSize,
		Sorting:       l.sorting,
		Tab:           l.tab,
		Filters:       filters,
		Search:        l.search,
		AppliedSearch: l.applied,
		Confirm:       confirm,
	}
}

func (l *List[T]) deriveLocked() []T {
	return Derive(l.items, Criteria[T]{
		Tab:         l.cfg.Tab,
		ActiveTab:   l.tab,
		Filters:     l.cfg.Filters,
		FilterValue: l.filters,
		Search:      l.cfg.Search,
		Term:        l.applied,
		Columns:     l.cfg.Columns,
		Sorting:     l.sorting,
	})
}

// Items returns a copy of the master list.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Get(id int64) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := l.indexLocked(id); idx >= 0 {
		return l.items[idx], true
	}
	var zero T
	return zero, false
}

// Patch updates one item in place.
func (l *List[T]) Patch(id int64, apply func(item *T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexLocked(id)
	if idx < 0 {
		return false
	}
	apply(&l.items[idx])
	return true
}

// Optimistic applies a speculative change, runs effect, and restores the
// snapshot if effect fails. Failures other than cancellation raise a toast.
func (l *List[T]) Optimistic(ctx context.Context, id int64, apply func(item *T), effect func(ctx context.Context) error) error {
	l.mu.Lock()
	idx := l.indexLocked(id)
	if idx < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%s %d: %w", l.cfg.Name, id, ErrNotFound)
	}
	snapshot := l.items[idx]
	apply(&l.items[idx])
	l.mu.Unlock()

	l.cfg.Loader.Show()
	err := effect(ctx)
	l.cfg.Loader.Hide()
	if err == nil {
		return nil
	}

	l.mu.Lock()
	if idx := l.indexLocked(id); idx >= 0 {
		l.items[idx] = snapshot
	}
	l.mu.Unlock()

	if !errors.Is(err, context.Canceled) {
		logger.Zlog.Warn("optimistic update rolled back",
			zap.String("list", l.cfg.Name),
			zap.Int64("id", id),
			zap.Error(err))
		l.cfg.Notifier.Error(err.Error())
	}
	return err
}

// Submit runs a blocking mutation under the loader. On success it raises
// successMsg and refetches; the error is returned for inline display.
func (l *List[T]) Submit(ctx context.Context, action func(ctx context.Context) error, successMsg string) error {
	l.cfg.Loader.Show()
	err := action(ctx)
	l.cfg.Loader.Hide()
	if err != nil {
		return err
	}

	if successMsg != "" {
		l.cfg.Notifier.Success(successMsg)
	}
	_ = l.Refetch(ctx)
	return nil
}

func (l *List[T]) indexLocked(id int64) int {
	if l.cfg.Key == nil {
		return -1
	}
	for i, item := range l.items {
		if l.cfg.Key(item) == id {
			return i
		}
	}
	return -1
}

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return int(math.Ceil(float64(n) / float64(size)))
}

// Paginate returns the 1-based page of items.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

type nopLoader struct{}

func (nopLoader) Show() {}
func (nopLoader) Hide() {}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
