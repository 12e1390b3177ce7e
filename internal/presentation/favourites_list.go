package presentation

import (
	"context"
	"log"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
)

type FavouritesListState[T any] struct {
	Items     []T
	Loading   bool
	Err       error
	ActionErr error
}

// favouritesList is the shared body of the author and genre lists: a stream
// of items that can each be flagged as favourite.
type favouritesList[T any] struct {
	what   string
	scope  *Scope
	store  *Store[FavouritesListState[T]]
	setter FavouriteSetter
	key    func(T) (string, bool)
}

func newFavouritesList[T any](ctx context.Context, what string, open func(context.Context) <-chan observe.Update[[]T], setter FavouriteSetter, key func(T) (string, bool)) *favouritesList[T] {
	l := &favouritesList[T]{
		what:   what,
		scope:  NewScope(ctx),
		store:  NewStore(FavouritesListState[T]{Loading: true}),
		setter: setter,
		key:    key,
	}
	l.scope.Launch(func(ctx context.Context) {
		for u := range open(ctx) {
			if u.Err != nil {
				log.Printf("Failed to load %s: %v", l.what, u.Err)
			}
			l.store.Update(func(s FavouritesListState[T]) FavouritesListState[T] {
				s.Loading = false
				s.Err = u.Err
				if u.Err == nil {
					s.Items = u.Value
				}
				return s
			})
		}
	})
	return l
}

// ToggleFavourite flips the favourite flag of the item with id. Unknown ids
// are ignored.
func (l *favouritesList[T]) ToggleFavourite(id string) {
	favourite, found := false, false
	for _, item := range l.store.Snapshot().Items {
		if itemID, fav := l.key(item); itemID == id {
			favourite, found = fav, true
			break
		}
	}
	if !found {
		return
	}

	l.scope.Launch(func(ctx context.Context) {
		err := l.setter.Execute(ctx, id, !favourite)
		if err != nil {
			log.Printf("Failed to update favourite %s %q: %v", l.what, id, err)
		}
		l.store.Update(func(s FavouritesListState[T]) FavouritesListState[T] {
			s.ActionErr = err
			return s
		})
	})
}

func (l *favouritesList[T]) Snapshot() FavouritesListState[T] {
	return l.store.Snapshot()
}

func (l *favouritesList[T]) State(ctx context.Context) <-chan ListView[T] {
	ctx = l.scope.Bind(ctx)
	return Project(ctx, l.store.Subscribe(ctx), func(s FavouritesListState[T]) ListView[T] {
		return ListView[T]{List: ToListState(s.Loading, s.Items, s.Err), Err: s.ActionErr}
	})
}

func (l *favouritesList[T]) Close() {
	l.scope.Close()
}

// AuthorList shows every author.
type AuthorList struct {
	*favouritesList[models.Author]
}

func NewAuthorList(ctx context.Context, authors AuthorsGetter, setter FavouriteSetter) *AuthorList {
	return &AuthorList{newFavouritesList(ctx, "authors", authors.Execute, setter,
		func(a models.Author) (string, bool) { return a.ID, a.IsFavourite })}
}

// GenreList shows every genre.
type GenreList struct {
	*favouritesList[models.Genre]
}

func NewGenreList(ctx context.Context, genres GenresGetter, setter FavouriteSetter) *GenreList {
	return &GenreList{newFavouritesList(ctx, "genres", genres.Execute, setter,
		func(g models.Genre) (string, bool) { return g.ID, g.IsFavourite })}
}
