package handlers

import (
	stderrors "errors"
	"net/http"

	"starbank/internal/dto"
	"starbank/internal/errors"
	"starbank/internal/repositories"
	"starbank/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a new user
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User details"
// @Success 201 {object} models.User
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid payload or weak password"
// @Failure 422 {object} errors.ErrorResponse "USER_002 - Email already registered"
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	user, err := h.userService.CreateUser(c.Request().Context(), services.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if stderrors.Is(err, repositories.ErrEmailAlreadyExists) {
			return SendError(c, errors.UserAlreadyExists)
		}
		if isPasswordError(err) {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers lists users with pagination
func (h *UserHandler) ListUsers(c echo.Context) error {
	offset, limit := parsePagination(c)

	users, total, err := h.userService.GetUsers(offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListUsersResponse{
		Users:      users,
		Pagination: dto.PaginationInfo{Offset: offset, Limit: limit, Total: total},
	})
}

// UpdateUser applies a partial update to a user
// @Summary Update user
// @Description Only the provided fields change; omitted fields keep their stored values.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	user, err := h.userService.UpdateUser(id, services.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, errors.UserNotFound)
		}
		if stderrors.Is(err, repositories.ErrEmailAlreadyExists) {
			return SendError(c, errors.UserAlreadyExists)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser soft deletes a user
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func isPasswordError(err error) bool {
	return stderrors.Is(err, services.ErrPasswordEmpty) ||
		stderrors.Is(err, services.ErrPasswordTooShort) ||
		stderrors.Is(err, services.ErrPasswordTooLong) ||
		stderrors.Is(err, services.ErrPasswordNoUppercase) ||
		stderrors.Is(err, services.ErrPasswordNoLowercase) ||
		stderrors.Is(err, services.ErrPasswordNoNumber)
}
