package jsonstore

import (
	"sort"

	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
)

// LearningProgressRepository 是学习进度表的 JSON 文档实现
type LearningProgressRepository struct {
	store *Store
}

func NewLearningProgressRepository(store *Store) *LearningProgressRepository {
	return &LearningProgressRepository{store: store}
}

var _ interfaces.LearningProgressRepository = (*LearningProgressRepository)(nil)

func cloneProgress(p *model.LearningProgress) *model.LearningProgress {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (r *LearningProgressRepository) Create(progress *model.LearningProgress) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.doc.LearningProgress = append(r.store.doc.LearningProgress, cloneProgress(progress))
	return r.store.persistLocked()
}

func (r *LearningProgressRepository) FindByID(id string) (*model.LearningProgress, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.doc.LearningProgress {
		if p.ID == id {
			return cloneProgress(p), nil
		}
	}
	return nil, nil
}

func (r *LearningProgressRepository) FindAll() ([]*model.LearningProgress, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*model.LearningProgress, 0, len(r.store.doc.LearningProgress))
	for _, p := range r.store.doc.LearningProgress {
		list = append(list, cloneProgress(p))
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *LearningProgressRepository) Update(progress *model.LearningProgress) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.doc.LearningProgress {
		if p.ID == progress.ID {
			r.store.doc.LearningProgress[i] = cloneProgress(progress)
			return r.store.persistLocked()
		}
	}
	return interfaces.ErrNotFound
}

func (r *LearningProgressRepository) Delete(id string) (*model.LearningProgress, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.doc.LearningProgress {
		if p.ID == id {
			deleted := p
			r.store.doc.LearningProgress = append(r.store.doc.LearningProgress[:i], r.store.doc.LearningProgress[i+1:]...)
			if err := r.store.persistLocked(); err != nil {
				return nil, err
			}
			return deleted, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

// LearningResourceRepository 是学习资源表的 JSON 文档实现
type LearningResourceRepository struct {
	store *Store
}

func NewLearningResourceRepository(store *Store) *LearningResourceRepository {
	return &LearningResourceRepository{store: store}
}

var _ interfaces.LearningResourceRepository = (*LearningResourceRepository)(nil)

func cloneResource(res *model.LearningResource) *model.LearningResource {
	if res == nil {
		return nil
	}
	copied := *res
	copied.Tags = append([]string{}, res.Tags...)
	copied.Likes = make(map[string]bool, len(res.Likes))
	for k, v := range res.Likes {
		copied.Likes[k] = v
	}
	return &copied
}

func (r *LearningResourceRepository) Create(resource *model.LearningResource) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.doc.LearningResources = append(r.store.doc.LearningResources, cloneResource(resource))
	return r.store.persistLocked()
}

func (r *LearningResourceRepository) FindByID(id string) (*model.LearningResource, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, res := range r.store.doc.LearningResources {
		if res.ID == id {
			return cloneResource(res), nil
		}
	}
	return nil, nil
}

func (r *LearningResourceRepository) FindAll() ([]*model.LearningResource, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*model.LearningResource, 0, len(r.store.doc.LearningResources))
	for _, res := range r.store.doc.LearningResources {
		list = append(list, cloneResource(res))
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *LearningResourceRepository) Update(resource *model.LearningResource) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, res := range r.store.doc.LearningResources {
		if res.ID == resource.ID {
			r.store.doc.LearningResources[i] = cloneResource(resource)
			return r.store.persistLocked()
		}
	}
	return interfaces.ErrNotFound
}

func (r *LearningResourceRepository) Delete(id string) (*model.LearningResource, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, res := range r.store.doc.LearningResources {
		if res.ID == id {
			deleted := res
			r.store.doc.LearningResources = append(r.store.doc.LearningResources[:i], r.store.doc.LearningResources[i+1:]...)
			if err := r.store.persistLocked(); err != nil {
				return nil, err
			}
			return deleted, nil
		}
	}
	return nil, interfaces.ErrNotFound
}
