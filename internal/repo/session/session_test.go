package session_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/wb_records/internal/domain"
	"github.com/Gunvolt24/wb_records/internal/ports/mocks"
	"github.com/Gunvolt24/wb_records/internal/repo/memory"
	"github.com/Gunvolt24/wb_records/internal/repo/session"
)

func write(t *testing.T, w io.WriteCloser, s string) {
	t.Helper()
	_, err := io.WriteString(w, s)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestSession_CommitTransferredUnits(t *testing.T) {
	store := memory.NewUnitStore()
	s := session.New(store)

	u := s.Create()
	s.PutAttributes(u, map[string]string{"a": "1"})
	write(t, s.Write(u), "payload")
	s.PutAttributes(u, map[string]string{"b": "2"})
	s.Transfer(u, domain.RelSuccess)

	require.NoError(t, s.Commit(context.Background()))
	assert.Zero(t, s.Pending())

	got, err := store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "payload", string(got.Content))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got.Attributes)
	assert.Equal(t, domain.RelSuccess, got.Relationship)
}

func TestSession_RemovedUnitIsNotStored(t *testing.T) {
	store := memory.NewUnitStore()
	s := session.New(store)

	u := s.Create()
	write(t, s.Write(u), "x")
	s.Remove(u)

	require.NoError(t, s.Commit(context.Background()))
	assert.Empty(t, store.All())
}

func TestSession_CommitRejectsUntransferred(t *testing.T) {
	s := session.New(memory.NewUnitStore())
	s.Create()

	err := s.Commit(context.Background())
	assert.True(t, errors.Is(err, session.ErrUnitNotTransferred))

	s.Rollback()
	assert.Zero(t, s.Pending())
	assert.NoError(t, s.Commit(context.Background()))
}

func TestSession_StoreErrorKeepsUnits(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockUnitStore(ctrl)
	store.EXPECT().SaveUnits(gomock.Any(), gomock.Len(1)).Return(errors.New("db down"))

	s := session.New(store)
	u := s.Create()
	s.Transfer(u, domain.RelSuccess)

	require.Error(t, s.Commit(context.Background()))
	assert.Equal(t, 1, s.Pending())
	s.Rollback()
	assert.Zero(t, s.Pending())
}

func TestSession_WriteAfterClose(t *testing.T) {
	s := session.New(memory.NewUnitStore())
	w := s.Write(s.Create())
	require.NoError(t, w.Close())
	_, err := w.Write([]byte("late"))
	assert.Error(t, err)

	_, err = s.Write(&domain.OutputUnit{ID: "foreign"}).Write([]byte("x"))
	assert.Error(t, err)
}

func TestFactory_IndependentSessions(t *testing.T) {
	f := session.NewFactory(memory.NewUnitStore())
	a, b := f.NewSession(), f.NewSession()
	a.Create()
	assert.Equal(t, 1, a.(*session.Session).Pending())
	assert.Zero(t, b.(*session.Session).Pending())
}
