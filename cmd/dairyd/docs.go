package main

// @title Dairy Ledger API
// @version 1.0
// @description Point-of-sale ledger for a dairy shop: sales, customer dues, stock and cash reconciliation

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Sales
// @tag.description Cart checkout and sale history

// @tag.name Ledger
// @tag.description Customer payments, FIFO settlement and dues

// @tag.name Inventory
// @tag.description Daily stock records and movements

// @tag.name Cash
// @tag.description Cash journal and daily position

// @tag.name Health
// @tag.description Health check endpoints
