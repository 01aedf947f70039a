package services

import (
	"context"
	"testing"

	"starbank/internal/database"
	"starbank/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
)

const testPassword = "Sup3rSecretPass"

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

type UserServiceSuite struct {
	suite.Suite
	db        *database.DB
	service   UserServiceInterface
	passwords PasswordServiceInterface
}

func (s *UserServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.passwords = NewPasswordService()
	s.service = NewUserService(
		repositories.NewUserRepository(s.db.DB),
		s.passwords,
		testLogger(),
		noopMetrics{},
	)
}

func (s *UserServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserServiceSuite) createUser(email string) uint {
	s.T().Helper()
	user, err := s.service.CreateUser(context.Background(), CreateUserInput{
		Email:     email,
		Password:  testPassword,
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	})
	s.Require().NoError(err)
	return user.ID
}

func (s *UserServiceSuite) TestCreateUser_HashesPassword() {
	email := gofakeit.Email()
	id := s.createUser(email)

	user, err := s.service.GetUser(id)
	s.Require().NoError(err)
	s.Equal(email, user.Email)
	s.NotEqual(testPassword, user.PasswordHash)
	s.True(s.passwords.ComparePassword(testPassword, user.PasswordHash))
	s.False(s.passwords.ComparePassword("WrongPass12345", user.PasswordHash))
}

func (s *UserServiceSuite) TestCreateUser_RejectsWeakPassword() {
	_, err := s.service.CreateUser(context.Background(), CreateUserInput{
		Email:    gofakeit.Email(),
		Password: "short",
	})
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *UserServiceSuite) TestCreateUser_DuplicateEmail() {
	email := gofakeit.Email()
	s.createUser(email)

	_, err := s.service.CreateUser(context.Background(), CreateUserInput{
		Email:    email,
		Password: testPassword,
	})
	s.ErrorIs(err, repositories.ErrEmailAlreadyExists)
}

func (s *UserServiceSuite) TestUpdateUser_PartialFields() {
	id := s.createUser(gofakeit.Email())

	first := "Irina"
	updated, err := s.service.UpdateUser(id, UserUpdate{FirstName: &first})
	s.Require().NoError(err)
	s.Equal("Irina", updated.FirstName)

	unchanged, err := s.service.UpdateUser(id, UserUpdate{})
	s.Require().NoError(err)
	s.Equal("Irina", unchanged.FirstName)
}

func (s *UserServiceSuite) TestDeleteUser() {
	id := s.createUser(gofakeit.Email())

	s.Require().NoError(s.service.DeleteUser(context.Background(), id))

	_, err := s.service.GetUser(id)
	s.ErrorIs(err, repositories.ErrUserNotFound)
}

func (s *UserServiceSuite) TestGetUsers_Pagination() {
	for i := 0; i < 3; i++ {
		s.createUser(gofakeit.Email())
	}

	users, total, err := s.service.GetUsers(0, 2)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(users, 2)
}
