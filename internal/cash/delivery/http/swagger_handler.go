package http

// GetPosition godoc
// @Summary Cash position
// @Description Starting cash plus cash sales and credits, minus cash expenses and debits, over a range
// @Tags Cash
// @Security BearerAuth
// @Produce json
// @Param range query string false "today, month or custom"
// @Param date query string false "Business date for a custom range (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=object{starting_cash=number,total_sales=number,total_expenses=number,total_credits=number,total_debits=number,ending_cash=number}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cash/position [get]
func (h *CashHandler) GetPositionDoc() {}

// ListEntries godoc
// @Summary List cash entries
// @Tags Cash
// @Security BearerAuth
// @Produce json
// @Param range query string false "today, month or custom"
// @Param date query string false "Business date for a custom range (YYYY-MM-DD)"
// @Param source query string false "manual, sale or payment"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/cash/entries [get]
func (h *CashHandler) ListEntriesDoc() {}

// CreateEntry godoc
// @Summary Create a manual cash entry
// @Tags Cash
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{type=string,amount=number,category=string,description=string,business_date=string} true "Cash entry"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cash/entries [post]
func (h *CashHandler) CreateEntryDoc() {}

// UpdateEntry godoc
// @Summary Update a manual cash entry
// @Description Entries written by sales or payments cannot be edited (422)
// @Tags Cash
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body object{type=string,amount=number,category=string,description=string,business_date=string} true "Cash entry"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/cash/entries/{id} [put]
func (h *CashHandler) UpdateEntryDoc() {}

// DeleteEntry godoc
// @Summary Delete a manual cash entry
// @Tags Cash
// @Security BearerAuth
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/cash/entries/{id} [delete]
func (h *CashHandler) DeleteEntryDoc() {}

// SetStartingCash godoc
// @Summary Set starting cash
// @Description Records the opening cash of a business day, replacing an earlier value
// @Tags Cash
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{business_date=string,amount=number,note=string} true "Starting cash"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cash/starting [put]
func (h *CashHandler) SetStartingCashDoc() {}
