package services

import (
	"github.com/pkaczor/serwisapp/internal/models"
	"gorm.io/gorm"
)

// ReportsService backs the dashboard and reports views. Everything is
// recomputed from the store on each call; nothing here is cached.
type ReportsService struct {
	DB    *gorm.DB
	Costs *CostService
}

func NewReportsService(db *gorm.DB) *ReportsService {
	return &ReportsService{DB: db, Costs: NewCostService(db)}
}

type Summary struct {
	OrdersByStatus   map[models.OrderStatus]int64 `json:"ordersByStatus"`
	QuotesByStatus   map[models.QuoteStatus]int64 `json:"quotesByStatus"`
	ClientCount      int64                        `json:"clientCount"`
	CompletedRevenue float64                      `json:"completedRevenue"`
	CompletedCosts   float64                      `json:"completedCosts"`
	CompletedProfit  float64                      `json:"completedProfit"`
}

func (s *ReportsService) Summary() (Summary, error) {
	sum := Summary{
		OrdersByStatus: map[models.OrderStatus]int64{},
		QuotesByStatus: map[models.QuoteStatus]int64{},
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var orderCounts []statusCount
	if err := s.DB.Model(&models.Order{}).Select("status, count(*) as n").Group("status").Scan(&orderCounts).Error; err != nil {
		return Summary{}, StoreErr("order_counts", err)
	}
	for _, c := range orderCounts {
		sum.OrdersByStatus[models.OrderStatus(c.Status)] = c.N
	}
	var quoteCounts []statusCount
	if err := s.DB.Model(&models.Quote{}).Select("status, count(*) as n").Group("status").Scan(&quoteCounts).Error; err != nil {
		return Summary{}, StoreErr("quote_counts", err)
	}
	for _, c := range quoteCounts {
		sum.QuotesByStatus[models.QuoteStatus(c.Status)] = c.N
	}
	if err := s.DB.Model(&models.Client{}).Count(&sum.ClientCount).Error; err != nil {
		return Summary{}, StoreErr("client_count", err)
	}

	var completed []models.Order
	if err := s.DB.Where("status = ?", models.OrderStatusCompleted).Find(&completed).Error; err != nil {
		return Summary{}, StoreErr("completed_orders", err)
	}
	for _, o := range completed {
		f, err := s.Costs.Aggregate(o.ID)
		if err != nil {
			return Summary{}, err
		}
		sum.CompletedRevenue += o.Value
		sum.CompletedCosts += f.TotalCosts
		sum.CompletedProfit += f.Profit
	}
	return sum, nil
}
