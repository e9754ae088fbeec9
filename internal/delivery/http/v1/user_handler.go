package v1

import (
	"net/http"

	"go-hiring-sync/internal/delivery/http/middleware"
	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(r *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := r.Group("/users")
	{
		users.GET("", handler.List)
		users.GET("/me", handler.Me)
		users.GET("/:id", handler.Get)
		users.POST("/login", handler.Login)
	}

	admin := users.Group("", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("", handler.Create)
		admin.PATCH("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}
}

type LoginRequest struct {
	PreviousUserID string `json:"previousUserId"`
}

// ListUsers godoc
// @Summary      List users
// @Description  Get the user directory
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Users", h.userUC.ListUsers())
}

// GetCurrentUser godoc
// @Summary      Get current user
// @Description  Get the user named by the token
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userUC.GetUser(actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}

// GetUser godoc
// @Summary      Get user
// @Description  Get a user by id
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userUC.GetUser(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User", user)
}

// RecordLogin godoc
// @Summary      Record login
// @Description  Record an identity switch to the token's user. The body is optional.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        login  body  LoginRequest  false  "Previous user"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users/login [post]
// @Security     BearerAuth
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if err := h.userUC.RecordLogin(c.Request.Context(), actorID(c), req.PreviousUserID); err != nil {
		c.Error(err)
		return
	}
	user, err := h.userUC.GetUser(actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Login recorded", user)
}

// CreateUser godoc
// @Summary      Create user
// @Description  Add a user to the directory (Admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body  domain.User  true  "User JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /users [post]
// @Security     BearerAuth
func (h *UserHandler) Create(c *gin.Context) {
	var req domain.User
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userUC.CreateUser(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User created", user)
}

// UpdateUser godoc
// @Summary      Update user
// @Description  Apply a partial update to a user (Admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Param        user  body  object  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /users/{id} [patch]
// @Security     BearerAuth
func (h *UserHandler) Update(c *gin.Context) {
	var patch domain.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	user, err := h.userUC.UpdateUser(c.Request.Context(), c.Param("id"), patch, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", user)
}

// DeleteUser godoc
// @Summary      Delete user
// @Description  Delete a user who is not the actor, owns no open jobs and sits on no active interviews (Admin only)
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userUC.DeleteUser(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}
