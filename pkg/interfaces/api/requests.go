package api

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

type createComponentRequest struct {
	Name         string            `json:"name" binding:"required"`
	Stock        entities.Quantity `json:"stock" binding:"gte=0"`
	LeadTimeDays int               `json:"lead_time_days" binding:"gte=0"`
	UnitCost     decimal.Decimal   `json:"unit_cost"`
}

type setStockRequest struct {
	Name  string            `json:"name" binding:"required"`
	Stock entities.Quantity `json:"stock" binding:"gte=0"`
}

type categoryRequest struct {
	ID   entities.CategoryID `json:"id"`
	Name string              `json:"name" binding:"required"`
}

type connectRequest struct {
	ChildID entities.NodeID `json:"child_id" binding:"required"`
}

type requirementRequest struct {
	Quantity entities.Quantity `json:"quantity" binding:"gte=0"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

type resolveRequest struct {
	Targets []entities.PlanTarget `json:"targets" binding:"required,min=1"`
}

type planRequest struct {
	Targets             []entities.PlanTarget `json:"targets" binding:"required,min=1"`
	ProductionCycleDays *int                  `json:"production_cycle_days" binding:"omitempty,gte=0"`
}

type compositionRequest struct {
	Query string `json:"query"`
}

type produceRequest struct {
	Query    string            `json:"query"`
	Quantity entities.Quantity `json:"quantity"`
}
