package http

// CreateSale godoc
// @Summary Record a sale
// @Description Records the sale, charges the unpaid part to the customer, deducts stock and books cash in one transaction. On failure the response names the failed step. Repeating a request with the same Idempotency-Key returns the recorded sale.
// @Tags Sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Retry key"
// @Param request body object{customer_id=int,items=[]object{product_id=int,quantity=number,price_per_unit=number},payment_mode=string,paid_amount=number,business_date=string} true "Sale"
// @Success 201 {object} object{success=bool,message=string,data=object{sale=object,new_total_due=number,replayed=bool}}
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,step=string}
// @Failure 404 {object} object{success=bool,error=string,step=string}
// @Failure 409 {object} object{success=bool,error=string,step=string}
// @Failure 422 {object} object{success=bool,error=string,step=string}
// @Router /api/sales [post]
func (h *SaleHandler) CreateSaleDoc() {}

// GetSale godoc
// @Summary Get a sale with its items
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/sales/{id} [get]
func (h *SaleHandler) GetSaleDoc() {}

// ListSales godoc
// @Summary List sales
// @Tags Sales
// @Security BearerAuth
// @Produce json
// @Param range query string false "today, month or custom"
// @Param date query string false "Business date for a custom range (YYYY-MM-DD)"
// @Param customer_id query int false "Customer ID"
// @Param mode query string false "cash, upi or pending"
// @Param status query string false "paid, partial, overpaid or pending"
// @Param limit query int false "Page size (max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{sales=[]object,total_amount=number,total_paid=number,total_remaining=number}}
// @Router /api/sales [get]
func (h *SaleHandler) ListSalesDoc() {}
