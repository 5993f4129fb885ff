package http

// ListCustomers godoc
// @Summary List customers
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param status query string false "all to include inactive customers"
// @Param search query string false "Name or phone"
// @Param dues query bool false "Only customers with a positive balance"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/customers [get]
func (h *CustomerHandler) ListCustomersDoc() {}

// GetCustomer godoc
// @Summary Get a customer
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} object{success=bool,data=object{id=int,name=string,phone=string,total_due=number,due_status=string}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomerDoc() {}

// CreateCustomer godoc
// @Summary Create a customer
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,phone=string,address=string} true "Customer"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/customers [post]
func (h *CustomerHandler) CreateCustomerDoc() {}

// UpdateCustomer godoc
// @Summary Update customer contact details
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param request body object{name=string,phone=string,address=string} true "Contact details"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomerDoc() {}

// DeleteCustomer godoc
// @Summary Delete a customer
// @Description Customers with sales or payments are deactivated instead
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} object{success=bool,message=string,data=object{id=int,deactivated=bool}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomerDoc() {}
