package http

// CreateExpense godoc
// @Summary Record an expense
// @Description Cash expenses lower the cash position of their business date.
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{title=string,category=string,amount=number,payment_mode=string,business_date=string,note=string} true "Expense"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/expenses [post]
func (h *ExpenseHandler) CreateExpenseDoc() {}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body object{title=string,category=string,amount=number,payment_mode=string,business_date=string,note=string} true "Expense"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpenseDoc() {}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpenseDoc() {}

// GetExpense godoc
// @Summary Get an expense
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseDoc() {}

// ListExpenses godoc
// @Summary List expenses
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param range query string false "today, month or custom"
// @Param date query string false "Business date for a custom range (YYYY-MM-DD)"
// @Param category query string false "Category"
// @Param payment_mode query string false "Payment mode"
// @Success 200 {object} object{success=bool,data=object{expenses=[]object,total=number,by_category=object}}
// @Router /api/expenses [get]
func (h *ExpenseHandler) ListExpensesDoc() {}
