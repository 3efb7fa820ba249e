package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahanchanuka24/Academix-V2.0/internal/model"
	"github.com/sahanchanuka24/Academix-V2.0/internal/repository/interfaces"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := Open(path)
	require.NoError(t, err)
	return store, path
}

// TestOpenMissingFile 测试打开不存在的文件得到空文档
func TestOpenMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	users, err := NewUserRepository(store).FindByID("anything")
	assert.NoError(t, err)
	assert.Nil(t, users)

	posts, err := NewPostRepository(store).FindAll()
	assert.NoError(t, err)
	assert.Empty(t, posts)
}

// TestPersistRoundTrip 测试写入后重新打开能读回同样的数据
func TestPersistRoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	repo := NewUserRepository(store)

	user := &model.User{
		ID:        "u1",
		Fullname:  "Alice",
		Email:     "alice@example.com",
		Password:  "hashed",
		Skills:    []string{"go"},
		Following: []string{},
		Followers: []string{},
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(user))

	// 文件必须在请求返回前就落盘
	_, err := os.Stat(path)
	assert.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	found, err := NewUserRepository(reopened).FindByEmail("alice@example.com")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.ID)
	assert.Equal(t, "hashed", found.Password, "密码哈希必须持久化")
	assert.Equal(t, []string{"go"}, found.Skills)
}

// TestFindReturnsClone 测试返回值是深拷贝，外部修改不污染内存表
func TestFindReturnsClone(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewUserRepository(store)

	require.NoError(t, repo.Create(&model.User{ID: "u1", Fullname: "Alice", Skills: []string{"go"}}))

	found, err := repo.FindByID("u1")
	require.NoError(t, err)
	found.Fullname = "Mallory"
	found.Skills[0] = "evil"

	again, err := repo.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Fullname)
	assert.Equal(t, []string{"go"}, again.Skills)
}

// TestFollowAdjacency 测试关注关系双向一致、幂等且可逆
func TestFollowAdjacency(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewUserRepository(store)

	require.NoError(t, repo.Create(&model.User{ID: "u1", Fullname: "Alice"}))
	require.NoError(t, repo.Create(&model.User{ID: "u2", Fullname: "Bob"}))

	following, err := repo.AddFollow("u1", "u2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u2"}, following)

	// 双向邻接表同时更新
	u2, _ := repo.FindByID("u2")
	assert.Equal(t, []string{"u1"}, u2.Followers)

	// 重复关注不产生重复项
	following, err = repo.AddFollow("u1", "u2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"u2"}, following)

	// 取消后两侧都清空
	following, err = repo.RemoveFollow("u1", "u2")
	assert.NoError(t, err)
	assert.Empty(t, following)

	u2, _ = repo.FindByID("u2")
	assert.Empty(t, u2.Followers)

	// 再次取消是 no-op
	following, err = repo.RemoveFollow("u1", "u2")
	assert.NoError(t, err)
	assert.Empty(t, following)

	// 任一侧不存在时返回未找到
	_, err = repo.AddFollow("u1", "ghost")
	assert.Equal(t, interfaces.ErrNotFound, err)
}

// TestPostOrderAndDelete 测试帖子倒序排列与删除返回被删记录
func TestPostOrderAndDelete(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewPostRepository(store)

	base := time.Now()
	older := &model.Post{ID: "p1", UserID: "u1", Title: "Older", CreatedAt: base}
	newer := &model.Post{ID: "p2", UserID: "u1", Title: "Newer", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	posts, err := repo.FindAll()
	assert.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Equal(t, "p1", posts[1].ID)

	deleted, err := repo.Delete("p1")
	assert.NoError(t, err)
	assert.Equal(t, "Older", deleted.Title)

	_, err = repo.Delete("p1")
	assert.Equal(t, interfaces.ErrNotFound, err)

	posts, _ = repo.FindAll()
	assert.Len(t, posts, 1)
}

// TestUpdateMissingRecord 测试更新不存在的记录返回未找到
func TestUpdateMissingRecord(t *testing.T) {
	store, _ := newTestStore(t)

	err := NewUserRepository(store).Update(&model.User{ID: "ghost"})
	assert.Equal(t, interfaces.ErrNotFound, err)

	err = NewPostRepository(store).Update(&model.Post{ID: "ghost"})
	assert.Equal(t, interfaces.ErrNotFound, err)
}

// TestNotificationInbox 测试通知的过滤、排序与批量已读
func TestNotificationInbox(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewNotificationRepository(store)

	base := time.Now()
	require.NoError(t, repo.Create(&model.Notification{ID: "n1", UserID: "u1", Message: "older", CreatedAt: base}))
	require.NoError(t, repo.Create(&model.Notification{ID: "n2", UserID: "u1", Message: "newer", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, repo.Create(&model.Notification{ID: "n3", UserID: "u2", Message: "other", CreatedAt: base}))

	items, err := repo.FindByRecipient("u1")
	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n2", items[0].ID)
	assert.Equal(t, "n1", items[1].ID)

	marked, err := repo.MarkRead("n1")
	assert.NoError(t, err)
	assert.True(t, marked.Read)

	require.NoError(t, repo.MarkAllRead("u1"))
	items, _ = repo.FindByRecipient("u1")
	for _, n := range items {
		assert.True(t, n.Read)
	}

	// 其他收件箱不受影响
	others, _ := repo.FindByRecipient("u2")
	require.Len(t, others, 1)
	assert.False(t, others[0].Read)

	deleted, err := repo.Delete("n3")
	assert.NoError(t, err)
	assert.Equal(t, "other", deleted.Message)
	_, err = repo.Delete("n3")
	assert.Equal(t, interfaces.ErrNotFound, err)
}
