package jsonstore

import (
	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
)

// UserRepository 是 interfaces.UserRepository 的 JSON 文档实现
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ interfaces.UserRepository = (*UserRepository)(nil)

// cloneUser 返回用户的深拷贝，调用方的修改不会影响内存表
func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	copied := *u
	copied.Skills = append([]string{}, u.Skills...)
	copied.Following = append([]string{}, u.Following...)
	copied.Followers = append([]string{}, u.Followers...)
	return &copied
}

func (r *UserRepository) findLocked(id string) *model.User {
	for _, u := range r.store.doc.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *UserRepository) Create(user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.doc.Users = append(r.store.doc.Users, cloneUser(user))
	return r.store.persistLocked()
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneUser(r.findLocked(id)), nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.doc.Users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Update(user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, u := range r.store.doc.Users {
		if u.ID == user.ID {
			r.store.doc.Users[i] = cloneUser(user)
			return r.store.persistLocked()
		}
	}
	return interfaces.ErrNotFound
}

// AddFollow 在一次加锁中维护双方的邻接表，保证相互一致
func (r *UserRepository) AddFollow(followerID, followedID string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	follower := r.findLocked(followerID)
	followed := r.findLocked(followedID)
	if follower == nil || followed == nil {
		return nil, interfaces.ErrNotFound
	}

	follower.Following = addToSet(follower.Following, followedID)
	followed.Followers = addToSet(followed.Followers, followerID)

	if err := r.store.persistLocked(); err != nil {
		return nil, err
	}
	return append([]string{}, follower.Following...), nil
}

func (r *UserRepository) RemoveFollow(followerID, followedID string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	follower := r.findLocked(followerID)
	followed := r.findLocked(followedID)
	if follower == nil || followed == nil {
		return nil, interfaces.ErrNotFound
	}

	follower.Following = removeFromSet(follower.Following, followedID)
	followed.Followers = removeFromSet(followed.Followers, followerID)

	if err := r.store.persistLocked(); err != nil {
		return nil, err
	}
	return append([]string{}, follower.Following...), nil
}

func addToSet(set []string, value string) []string {
	for _, v := range set {
		if v == value {
			return set
		}
	}
	return append(set, value)
}

func removeFromSet(set []string, value string) []string {
	result := set[:0]
	for _, v := range set {
		if v != value {
			result = append(result, v)
		}
	}
	return result
}
