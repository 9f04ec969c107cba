package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rhammad/visitflow/internal/domain/folder"
	"github.com/rhammad/visitflow/internal/repository"
	"github.com/stretchr/testify/require"
)

func createTestFolder(t *testing.T, repo *FolderRepository, name string, parentID *string) *folder.Folder {
	t.Helper()

	f := &folder.Folder{
		ID:        newFolderID(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), f))
	return f
}

func TestFolderRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	root := createTestFolder(t, repo, "Acme Corp", nil)
	child := createTestFolder(t, repo, "2025-03 (March)", &root.ID)

	got, err := repo.Get(ctx, child.ID)
	require.NoError(t, err)
	require.Equal(t, "2025-03 (March)", got.Name)
	require.NotNil(t, got.ParentID)
	require.Equal(t, root.ID, *got.ParentID)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFolderRepository_DuplicateSibling(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)

	root := createTestFolder(t, repo, "Acme Corp", nil)
	createTestFolder(t, repo, "2025-03 (March)", &root.ID)

	dup := &folder.Folder{
		ID:        newFolderID(),
		Name:      "2025-03 (March)",
		ParentID:  &root.ID,
		CreatedAt: time.Now(),
	}
	err := repo.Create(context.Background(), dup)
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestFolderRepository_GetOrCreateChild(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	root := createTestFolder(t, repo, "Acme Corp", nil)

	first, err := repo.GetOrCreateChild(ctx, root.ID, "2025-03 (March)")
	require.NoError(t, err)

	second, err := repo.GetOrCreateChild(ctx, root.ID, "2025-03 (March)")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "repeated get-or-create must converge on one row")

	// Unknown parent behaves as not found
	_, err = repo.GetOrCreateChild(ctx, "missing", "2025-03 (March)")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

// TestFolderRepository_GetOrCreateChildConcurrent drives racing get-or-create
// calls at the same (parent, name) and verifies exactly one row survives.
func TestFolderRepository_GetOrCreateChildConcurrent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	root := createTestFolder(t, repo, "Acme Corp", nil)

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := repo.GetOrCreateChild(ctx, root.ID, "2025-03 (March)")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = f.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, ids[0], ids[i], "all callers must observe the same folder")
	}

	children, err := repo.Children(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
}

func TestFolderRepository_FindRootByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	_, err := repo.FindRootByName(ctx, "Signed Reports")
	require.ErrorIs(t, err, repository.ErrNotFound)

	root := createTestFolder(t, repo, "Signed Reports", nil)
	// A child with the same name must not shadow the root
	createTestFolder(t, repo, "Signed Reports", &root.ID)

	got, err := repo.FindRootByName(ctx, "Signed Reports")
	require.NoError(t, err)
	require.Equal(t, root.ID, got.ID)
}

func TestFolderRepository_FindChildByPrefix(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	root := createTestFolder(t, repo, "Acme Corp", nil)
	march := createTestFolder(t, repo, "2025-03 (March)", &root.ID)
	createTestFolder(t, repo, "2025-04 (April)", &root.ID)

	got, err := repo.FindChildByPrefix(ctx, root.ID, "2025-03")
	require.NoError(t, err)
	require.Equal(t, march.ID, got.ID)

	_, err = repo.FindChildByPrefix(ctx, root.ID, "2025-05")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

// TestFolderRepository_DeleteCascades verifies that deleting a folder removes
// the whole subtree and its documents.
func TestFolderRepository_DeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	root := createTestFolder(t, repo, "Acme Corp", nil)
	month := createTestFolder(t, repo, "2025-03 (March)", &root.ID)

	_, err := db.ExecContext(ctx,
		`INSERT INTO documents (id, name, folder_id, data) VALUES (?, ?, ?, ?)`,
		"d1", "Visit Report - Acme - 2025/03 - 1.pdf", month.ID, "")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, root.ID))

	_, err = repo.Get(ctx, month.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count))
	require.Equal(t, 0, count, "documents in the subtree must be removed")

	require.ErrorIs(t, repo.Delete(ctx, root.ID), repository.ErrNotFound)
}

// TestFolderRepository_DocumentCount verifies the recursive count over the
// subtree.
func TestFolderRepository_DocumentCount(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	root := createTestFolder(t, repo, "Acme Corp", nil)
	march := createTestFolder(t, repo, "2025-03 (March)", &root.ID)
	april := createTestFolder(t, repo, "2025-04 (April)", &root.ID)
	other := createTestFolder(t, repo, "Unrelated", nil)

	insert := `INSERT INTO documents (id, name, folder_id, data) VALUES (?, ?, ?, '')`
	_, err := db.ExecContext(ctx, insert, "d1", "a.pdf", march.ID)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "d2", "b.pdf", april.ID)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "d3", "c.pdf", other.ID)
	require.NoError(t, err)

	count, err := repo.DocumentCount(ctx, root.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = repo.DocumentCount(ctx, march.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestFolderRepository_Children(t *testing.T) {
	db := NewTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()

	root := createTestFolder(t, repo, "Acme Corp", nil)
	createTestFolder(t, repo, "2025-04 (April)", &root.ID)
	createTestFolder(t, repo, "2025-03 (March)", &root.ID)

	children, err := repo.Children(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.Equal(t, "2025-03 (March)", children[0].Name, "children sorted by name")
}
