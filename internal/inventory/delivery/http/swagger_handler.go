package http

// AddStock godoc
// @Summary Add stock
// @Description Book newly received stock for a product on a business date (defaults to today)
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int,quantity=number,business_date=string,note=string} true "Stock addition"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/inventory/stock [post]
func (h *InventoryHandler) AddStockDoc() {}

// RecordWaste godoc
// @Summary Record waste
// @Description Book spoiled or discarded stock. Rejected with 422 under the strict stock policy when more than the remaining quantity is removed.
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int,quantity=number,business_date=string,note=string} true "Waste"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/inventory/waste [post]
func (h *InventoryHandler) RecordWasteDoc() {}

// AdjustStock godoc
// @Summary Adjust stock
// @Description Set the counted quantity of a product; the difference is booked as an addition or as waste
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int,quantity=number,business_date=string,note=string} true "Counted quantity"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/adjust [post]
func (h *InventoryHandler) AdjustStockDoc() {}

// GetDailySummary godoc
// @Summary Daily stock summary
// @Description Added, sold and available quantity of one product for a day. Read-only.
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param product_id path int true "Product ID"
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=object{product_id=int,business_date=string,today_added=number,today_sold=number,waste=number,available=number}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/summary/{product_id} [get]
func (h *InventoryHandler) GetDailySummaryDoc() {}

// ListDailyRecords godoc
// @Summary List daily inventory
// @Description Every product's daily inventory record for a date
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param date query string false "Business date (YYYY-MM-DD)"
// @Success 200 {object} object{success=bool,data=object{business_date=string,records=array}}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/inventory/daily [get]
func (h *InventoryHandler) ListDailyRecordsDoc() {}

// ListMovements godoc
// @Summary Stock movement history
// @Description Stock movements, newest first, optionally per product and range
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param product_id query int false "Product ID"
// @Param range query string false "today, month or custom"
// @Param date query string false "Day for the custom range"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=object{movements=array,limit=int,offset=int}}
// @Router /api/inventory/movements [get]
func (h *InventoryHandler) ListMovementsDoc() {}
