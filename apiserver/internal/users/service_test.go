package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell"
)

type mockStore struct {
	users map[string]inkwell.User
}

func newMockStore() *mockStore {
	return &mockStore{
		users: map[string]inkwell.User{},
	}
}

func (m *mockStore) Create(_ context.Context, user inkwell.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockStore) Get(
	_ context.Context,
	id string,
) (inkwell.User, error) {
	user, ok := m.users[id]
	if !ok {
		return inkwell.User{}, inkwell.NewErrNotFound("User")
	}
	return user, nil
}

func (m *mockStore) GetByEmail(
	_ context.Context,
	email string,
) (inkwell.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return inkwell.User{}, inkwell.NewErrNotFound("User")
}

func (m *mockStore) GetSummaries(
	_ context.Context,
	ids []string,
) (map[string]inkwell.UserSummary, error) {
	summaries := map[string]inkwell.UserSummary{}
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			summaries[id] = user.Summary()
		}
	}
	return summaries, nil
}

func (m *mockStore) Update(
	_ context.Context,
	id string,
	update inkwell.UserUpdate,
) (inkwell.User, error) {
	user, ok := m.users[id]
	if !ok {
		return inkwell.User{}, inkwell.NewErrNotFound("User")
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	m.users[id] = user
	return user, nil
}

func (m *mockStore) UpdatePassword(
	_ context.Context,
	id string,
	passwordHash string,
) error {
	user, ok := m.users[id]
	if !ok {
		return inkwell.NewErrNotFound("User")
	}
	user.PasswordHash = passwordHash
	m.users[id] = user
	return nil
}

func TestGet(t *testing.T) {
	store := newMockStore()
	store.users["user-123"] = inkwell.User{
		ID:       "user-123",
		Username: "margaret",
	}
	service := NewService(store)

	user, err := service.Get(context.Background(), "user-123")
	require.NoError(t, err)
	require.Equal(t, "margaret", user.Username)

	_, err = service.Get(context.Background(), "no-such-user")
	require.Error(t, err)
	require.IsType(t, &inkwell.ErrNotFound{}, err)
}

func TestUpdateRequiresMatchingSubject(t *testing.T) {
	store := newMockStore()
	store.users["user-123"] = inkwell.User{
		ID:       "user-123",
		Username: "margaret",
		FullName: "Margaret Hamilton",
	}
	service := NewService(store)

	fullName := "M. Hamilton"
	_, err := service.Update(
		context.Background(),
		"someone-else",
		"user-123",
		inkwell.UserUpdate{
			FullName: &fullName,
		},
	)
	require.Error(t, err)
	require.IsType(t, &inkwell.ErrAuthorization{}, err)
	// The target must be untouched
	require.Equal(t, "Margaret Hamilton", store.users["user-123"].FullName)

	user, err := service.Update(
		context.Background(),
		"user-123",
		"user-123",
		inkwell.UserUpdate{
			FullName: &fullName,
		},
	)
	require.NoError(t, err)
	require.Equal(t, "M. Hamilton", user.FullName)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	store := newMockStore()
	store.users["user-123"] = inkwell.User{
		ID:       "user-123",
		Username: "margaret",
		FullName: "Margaret Hamilton",
		Bio:      "Director of software engineering.",
	}
	service := NewService(store)

	bio := "Led the team that wrote the onboard flight software."
	user, err := service.Update(
		context.Background(),
		"user-123",
		"user-123",
		inkwell.UserUpdate{
			Bio: &bio,
		},
	)
	require.NoError(t, err)
	require.Equal(t, bio, user.Bio)
	// Fields absent from the update are preserved
	require.Equal(t, "Margaret Hamilton", user.FullName)
}
