package http

// ApplyPayment godoc
// @Summary Apply a customer payment
// @Description Settles the customer's open sales oldest first. Money beyond what is owed stays as credit. Repeating a request with the same Idempotency-Key returns the recorded payment.
// @Tags Ledger
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param Idempotency-Key header string false "Retry key"
// @Param request body object{amount=number,method=string,business_date=string,note=string} true "Payment"
// @Success 201 {object} object{success=bool,message=string,data=object{payment=object,allocations=[]object,new_total_due=number,replayed=bool}}
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/customers/{id}/payments [post]
func (h *LedgerHandler) ApplyPaymentDoc() {}

// GetLedger godoc
// @Summary Customer ledger
// @Description Open sales, payments with their allocations and the balance, recomputed for comparison
// @Tags Ledger
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} object{success=bool,data=object{total_due=number,computed_due=number,in_sync=bool}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/customers/{id}/ledger [get]
func (h *LedgerHandler) GetLedgerDoc() {}

// RecomputeDue godoc
// @Summary Recompute a customer's balance
// @Tags Ledger
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} object{success=bool,data=object{customer_id=int,total_due=number}}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/customers/{id}/recompute [post]
func (h *LedgerHandler) RecomputeDueDoc() {}
