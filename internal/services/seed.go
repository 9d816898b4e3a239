package services

import (
	"time"

	"ticketbox-terminal/internal/models"
)

// DefaultEvents returns the events the terminal ships with
func DefaultEvents() []models.Event {
	return []models.Event{
		{
			ID:       "1",
			Name:     "Zim Sables VS Zambia",
			Date:     "2025-05-04",
			Time:     "10:00",
			ImageRef: "https://static.wixstatic.com/media/3015df_f4eef570a9c643a7912fef59ceaac768~mv2.jpeg",
			Category: "Music",
			Location: "Central Park",
			Tickets: []models.TicketType{
				{ID: "1-1", Name: "General Admission", Price: 500, Description: "Basic entry ticket"},
				{ID: "1-2", Name: "VIP Access", Price: 1000, Description: "Includes meet & greet"},
			},
		},
		{
			ID:       "2",
			Name:     "Mothers Day Conference",
			Date:     "2024-09-20",
			Time:     "09:00",
			ImageRef: "https://static.wixstatic.com/media/3015df_63d40c0fc9174e50862d3ce3ee5f9888~mv2.jpg",
			Category: "Conference",
			Location: "Convention Center",
			Tickets: []models.TicketType{
				{ID: "2-1", Name: "VIP Ticket", Price: 5000, Description: "VIP"},
			},
		},
		{
			ID:       "3",
			Name:     "Africa Day Golf Tournament & Dinner",
			Date:     "2024-08-10",
			Time:     "12:00",
			ImageRef: "https://static.wixstatic.com/media/3015df_a4c9563a57b74775820f42fecae9f4f6~mv2.png",
			Category: "Food",
			Location: "Riverfront Park",
			Tickets: []models.TicketType{
				{ID: "3-1", Name: "Tasting Pass", Price: 7500, Description: "Includes 10 tasting tokens"},
				{ID: "3-2", Name: "Premium Pass", Price: 12500, Description: "Unlimited tastings"},
			},
		},
		{
			ID:       "4",
			Name:     "Women In Waiting",
			Date:     "2024-06-30",
			Time:     "20:00",
			ImageRef: "https://static.wixstatic.com/media/3015df_24a5657a35b04b7ea8db314b49bcc3cd~mv2.png",
			Category: "Entertainment",
			Location: "Laugh Factory",
			Tickets: []models.TicketType{
				{ID: "4-1", Name: "Regular Seating", Price: 2500, Description: "Standard seating"},
				{ID: "4-2", Name: "Front Row", Price: 4500, Description: "Premium front row seats"},
			},
		},
		{
			ID:       "5",
			Name:     "Chronicles Of Worship Homecoming LIVE Recording",
			Date:     "2024-06-30",
			Time:     "20:00",
			ImageRef: "https://static.wixstatic.com/media/3015df_7dd70b467c2e4ea691e59f9292cb096a~mv2.png",
			Category: "Entertainment",
			Location: "Laugh Factory",
			Tickets: []models.TicketType{
				{ID: "5-1", Name: "Regular Seating", Price: 2500, Description: "Standard seating"},
				{ID: "5-2", Name: "Front Row", Price: 4500, Description: "Premium front row seats"},
			},
		},
	}
}

// DefaultTransactions returns the reference sales shown in the recent transactions list
func DefaultTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:            "TX-001",
			Date:          time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
			EventName:     "Zim Sables VS Zambia",
			Amount:        15000,
			Status:        models.TransactionCompleted,
			CustomerName:  "John Doe",
			PaymentMethod: models.PaymentCard,
			TicketCount:   2,
		},
		{
			ID:            "TX-002",
			Date:          time.Date(2024, 3, 15, 15, 45, 0, 0, time.UTC),
			EventName:     "Mothers Day Conference",
			Amount:        7500,
			Status:        models.TransactionCompleted,
			CustomerName:  "Jane Smith",
			PaymentMethod: models.PaymentMobile,
			TicketCount:   1,
		},
		{
			ID:            "TX-003",
			Date:          time.Date(2024, 3, 14, 11, 20, 0, 0, time.UTC),
			EventName:     "Africa Day Golf Tournament",
			Amount:        22500,
			Status:        models.TransactionRefunded,
			CustomerName:  "Mike Johnson",
			PaymentMethod: models.PaymentCash,
			TicketCount:   3,
		},
	}
}
