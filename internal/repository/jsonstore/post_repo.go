package jsonstore

import (
	"sort"

	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
)

// PostRepository 是 interfaces.PostRepository 的 JSON 文档实现
type PostRepository struct {
	store *Store
}

func NewPostRepository(store *Store) *PostRepository {
	return &PostRepository{store: store}
}

var _ interfaces.PostRepository = (*PostRepository)(nil)

func clonePost(p *model.Post) *model.Post {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Media = append([]string{}, p.Media...)
	copied.Likes = make(map[string]bool, len(p.Likes))
	for k, v := range p.Likes {
		copied.Likes[k] = v
	}
	copied.Comments = append([]model.Comment{}, p.Comments...)
	return &copied
}

func (r *PostRepository) Create(post *model.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.doc.Posts = append(r.store.doc.Posts, clonePost(post))
	return r.store.persistLocked()
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.doc.Posts {
		if p.ID == id {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

func (r *PostRepository) FindAll() ([]*model.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	posts := make([]*model.Post, 0, len(r.store.doc.Posts))
	for _, p := range r.store.doc.Posts {
		posts = append(posts, clonePost(p))
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.doc.Posts {
		if p.ID == post.ID {
			r.store.doc.Posts[i] = clonePost(post)
			return r.store.persistLocked()
		}
	}
	return interfaces.ErrNotFound
}

func (r *PostRepository) Delete(id string) (*model.Post, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.doc.Posts {
		if p.ID == id {
			deleted := p
			r.store.doc.Posts = append(r.store.doc.Posts[:i], r.store.doc.Posts[i+1:]...)
			if err := r.store.persistLocked(); err != nil {
				return nil, err
			}
			return deleted, nil
		}
	}
	return nil, interfaces.ErrNotFound
}
