package presentation

// ListState is what a list screen shows: one of Loading, Empty, ShowList or
// Failed.
type ListState[T any] interface {
	isListState()
}

type Loading[T any] struct{}

type Empty[T any] struct{}

type ShowList[T any] struct {
	Items []T
}

type Failed[T any] struct {
	Err error
}

func (Loading[T]) isListState()  {}
func (Empty[T]) isListState()    {}
func (ShowList[T]) isListState() {}
func (Failed[T]) isListState()   {}

// ToListState picks the variant for a list snapshot. A load error wins over
// stale items.
func ToListState[T any](loading bool, items []T, err error) ListState[T] {
	switch {
	case err != nil:
		return Failed[T]{Err: err}
	case loading:
		return Loading[T]{}
	case len(items) == 0:
		return Empty[T]{}
	default:
		return ShowList[T]{Items: items}
	}
}

// ListView is the state of a list screen that also starts writes: the list
// itself plus the last failed write, which does not replace the list.
type ListView[T any] struct {
	List ListState[T]
	Err  error
}

// ItemState is what a single-item screen shows.
type ItemState[T any] interface {
	isItemState()
}

type ItemLoading[T any] struct{}

type ItemLoaded[T any] struct {
	Item T
}

type ItemFailed[T any] struct {
	Err error
}

func (ItemLoading[T]) isItemState() {}
func (ItemLoaded[T]) isItemState()  {}
func (ItemFailed[T]) isItemState()  {}

// Kind names the variant of a list state, for wire formats.
func Kind[T any](state ListState[T]) string {
	switch state.(type) {
	case Loading[T]:
		return "loading"
	case Empty[T]:
		return "empty"
	case ShowList[T]:
		return "show_list"
	case Failed[T]:
		return "failed"
	default:
		return "unknown"
	}
}
