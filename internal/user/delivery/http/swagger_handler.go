package http

// Login godoc
// @Summary Staff login
// @Description Checks the credentials and returns a JWT carrying the pages of the user's type
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{success=bool,data=object{token=string,expires_at=string,user=object,pages=[]string}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/auth/login [post]
func (h *UserHandler) LoginDoc() {}

// CreateUser godoc
// @Summary Create a staff user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,mobile=string,email=string,username=string,password=string,address=string,user_type=string,user_pay=number} true "User"
// @Success 201 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/users [post]
func (h *UserHandler) CreateUserDoc() {}

// ListUsers godoc
// @Summary List staff users
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name, username, email or user type"
// @Param user_type query string false "User type"
// @Success 200 {object} object{success=bool,data=object{users=[]object,count=int}}
// @Router /api/users [get]
func (h *UserHandler) ListUsersDoc() {}

// GetStats godoc
// @Summary Staff counts
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{total_users=int,active_users=int,by_type=object}}
// @Router /api/users/stats [get]
func (h *UserHandler) GetStatsDoc() {}

// GetUser godoc
// @Summary Get a staff user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUserDoc() {}

// UpdateUser godoc
// @Summary Update a staff user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{name=string,mobile=string,email=string,address=string,user_type=string,user_pay=number} true "User"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUserDoc() {}

// DeleteUser godoc
// @Summary Delete a staff user
// @Tags Users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} object{success=bool,message=string}
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUserDoc() {}

// ChangePassword godoc
// @Summary Change a user's password
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Param id path int true "User ID"
// @Param request body object{current_password=string,new_password=string} true "Passwords"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/users/{id}/password [put]
func (h *UserHandler) ChangePasswordDoc() {}

// ToggleActive godoc
// @Summary Activate or deactivate a user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Param id path int true "User ID"
// @Param request body object{is_active=bool} true "Status"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /api/users/{id}/active [patch]
func (h *UserHandler) ToggleActiveDoc() {}

// ListUserTypes godoc
// @Summary List user types and grantable pages
// @Tags User Types
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{user_types=[]object,pages=[]string}}
// @Router /api/user-types [get]
func (h *UserHandler) ListUserTypesDoc() {}

// CreateUserType godoc
// @Summary Create a user type
// @Tags User Types
// @Security BearerAuth
// @Accept json
// @Param request body object{user_type=string,pages=[]string,is_active=bool} true "User type"
// @Success 201 {object} object{success=bool,data=object}
// @Router /api/user-types [post]
func (h *UserHandler) CreateUserTypeDoc() {}

// UpdateUserType godoc
// @Summary Update a user type's pages and status
// @Tags User Types
// @Security BearerAuth
// @Accept json
// @Param id path int true "User type ID"
// @Param request body object{pages=[]string,is_active=bool} true "User type"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/user-types/{id} [put]
func (h *UserHandler) UpdateUserTypeDoc() {}

// DeleteUserType godoc
// @Summary Delete a user type
// @Tags User Types
// @Security BearerAuth
// @Param id path int true "User type ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/user-types/{id} [delete]
func (h *UserHandler) DeleteUserTypeDoc() {}
