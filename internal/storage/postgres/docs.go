package postgres

import (
	"time"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// JSONB document shapes. Aggregates are stored whole, the way the data
// originated, with a few scalar columns extracted for indexing.

type addressDoc struct {
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
}

func addressToDoc(a model.Address) addressDoc {
	return addressDoc{City: a.City, State: a.State, Zip: a.Zip, AddressLine1: a.AddressLine1, AddressLine2: a.AddressLine2}
}

func (d addressDoc) toModel() model.Address {
	return model.Address{City: d.City, State: d.State, Zip: d.Zip, AddressLine1: d.AddressLine1, AddressLine2: d.AddressLine2}
}

type companyDoc struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Code    string     `json:"code"`
	Shift   string     `json:"shift"`
	Stipend float64    `json:"shiftBudget"`
	Address addressDoc `json:"address"`
	Status  string     `json:"status"`
}

type customerDoc struct {
	ID                 string       `json:"id"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	Email              string       `json:"email"`
	PasswordHash       string       `json:"passwordHash"`
	Role               string       `json:"role"`
	Status             string       `json:"status"`
	Companies          []companyDoc `json:"companies,omitempty"`
	OrderReminderOptIn bool         `json:"isOrderReminded"`
	CreatedAt          time.Time    `json:"createdAt"`
}

func customerToDoc(c *model.Customer) customerDoc {
	doc := customerDoc{
		ID:                 c.ID,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		Email:              c.Email,
		PasswordHash:       c.PasswordHash,
		Role:               string(c.Role),
		Status:             c.Status,
		OrderReminderOptIn: c.OrderReminderOptIn,
		CreatedAt:          c.CreatedAt,
	}
	for _, co := range c.Companies {
		doc.Companies = append(doc.Companies, companyDoc{
			ID:      co.ID,
			Name:    co.Name,
			Code:    co.Code,
			Shift:   string(co.Shift),
			Stipend: co.Stipend,
			Address: addressToDoc(co.Address),
			Status:  string(co.Status),
		})
	}
	return doc
}

func (d customerDoc) toModel() *model.Customer {
	c := &model.Customer{
		ID:                 d.ID,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		Role:               model.Role(d.Role),
		Status:             d.Status,
		OrderReminderOptIn: d.OrderReminderOptIn,
		CreatedAt:          d.CreatedAt,
	}
	for _, co := range d.Companies {
		c.Companies = append(c.Companies, model.Company{
			ID:      co.ID,
			Name:    co.Name,
			Code:    co.Code,
			Shift:   model.Shift(co.Shift),
			Stipend: co.Stipend,
			Address: co.Address.toModel(),
			Status:  model.CompanyStatus(co.Status),
		})
	}
	return c
}

type addonDoc struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type addonSpecDoc struct {
	Addons  []addonDoc `json:"addons,omitempty"`
	Addable int        `json:"addable"`
}

func addonSpecToDoc(s model.AddonSpec) addonSpecDoc {
	doc := addonSpecDoc{Addable: s.Addable}
	for _, a := range s.Addons {
		doc.Addons = append(doc.Addons, addonDoc{Label: a.Label, Price: a.Price})
	}
	return doc
}

func (d addonSpecDoc) toModel() model.AddonSpec {
	spec := model.AddonSpec{Addable: d.Addable}
	for _, a := range d.Addons {
		spec.Addons = append(spec.Addons, model.Addon{Label: a.Label, Price: a.Price})
	}
	return spec
}

type reviewDoc struct {
	CustomerID string    `json:"customer"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

type itemDoc struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Price                float64      `json:"price"`
	Tags                 string       `json:"tags"`
	Description          string       `json:"description"`
	Image                string       `json:"image,omitempty"`
	Status               string       `json:"status"`
	Index                int          `json:"index"`
	OptionalAddons       addonSpecDoc `json:"optionalAddons"`
	RequiredAddons       addonSpecDoc `json:"requiredAddons"`
	RemovableIngredients []string     `json:"removableIngredients,omitempty"`
	Reviews              []reviewDoc  `json:"reviews,omitempty"`
}

type scheduleDoc struct {
	DateMS             int64     `json:"date"`
	Status             string    `json:"status"`
	CompanyID          string    `json:"companyId"`
	CompanyName        string    `json:"companyName"`
	Shift              string    `json:"shift"`
	CreatedAt          time.Time `json:"createdAt"`
	DeactivatedByAdmin bool      `json:"deactivatedByAdmin,omitempty"`
}

type restaurantDoc struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Logo          string        `json:"logo,omitempty"`
	Address       addressDoc    `json:"address"`
	IsFeatured    bool          `json:"isFeatured,omitempty"`
	OrderCapacity int           `json:"orderCapacity"`
	Items         []itemDoc     `json:"items,omitempty"`
	Schedules     []scheduleDoc `json:"schedules,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func restaurantToDoc(r *model.Restaurant) restaurantDoc {
	doc := restaurantDoc{
		ID:            r.ID,
		Name:          r.Name,
		Logo:          r.Logo,
		Address:       addressToDoc(r.Address),
		IsFeatured:    r.IsFeatured,
		OrderCapacity: r.OrderCapacity,
		CreatedAt:     r.CreatedAt,
	}
	for _, it := range r.Items {
		item := itemDoc{
			ID:                   it.ID,
			Name:                 it.Name,
			Price:                it.Price,
			Tags:                 it.Tags,
			Description:          it.Description,
			Image:                it.Image,
			Status:               string(it.Status),
			Index:                it.Index,
			OptionalAddons:       addonSpecToDoc(it.OptionalAddons),
			RequiredAddons:       addonSpecToDoc(it.RequiredAddons),
			RemovableIngredients: it.RemovableIngredients,
		}
		for _, rv := range it.Reviews {
			item.Reviews = append(item.Reviews, reviewDoc{
				CustomerID: rv.CustomerID,
				Rating:     rv.Rating,
				Comment:    rv.Comment,
				CreatedAt:  rv.CreatedAt,
			})
		}
		doc.Items = append(doc.Items, item)
	}
	for _, s := range r.Schedules {
		doc.Schedules = append(doc.Schedules, scheduleDoc{
			DateMS:             s.DateMS,
			Status:             string(s.Status),
			CompanyID:          s.CompanyID,
			CompanyName:        s.CompanyName,
			Shift:              string(s.Shift),
			CreatedAt:          s.CreatedAt,
			DeactivatedByAdmin: s.DeactivatedByAdmin,
		})
	}
	return doc
}

func (d restaurantDoc) toModel() *model.Restaurant {
	r := &model.Restaurant{
		ID:            d.ID,
		Name:          d.Name,
		Logo:          d.Logo,
		Address:       d.Address.toModel(),
		IsFeatured:    d.IsFeatured,
		OrderCapacity: d.OrderCapacity,
		CreatedAt:     d.CreatedAt,
	}
	for _, it := range d.Items {
		item := model.Item{
			ID:                   it.ID,
			Name:                 it.Name,
			Price:                it.Price,
			Tags:                 it.Tags,
			Description:          it.Description,
			Image:                it.Image,
			Status:               model.ItemStatus(it.Status),
			Index:                it.Index,
			OptionalAddons:       it.OptionalAddons.toModel(),
			RequiredAddons:       it.RequiredAddons.toModel(),
			RemovableIngredients: it.RemovableIngredients,
		}
		for _, rv := range it.Reviews {
			item.Reviews = append(item.Reviews, model.Review{
				CustomerID: rv.CustomerID,
				Rating:     rv.Rating,
				Comment:    rv.Comment,
				CreatedAt:  rv.CreatedAt,
			})
		}
		r.Items = append(r.Items, item)
	}
	for _, s := range d.Schedules {
		r.Schedules = append(r.Schedules, model.Schedule{
			DateMS:             s.DateMS,
			Status:             model.ScheduleStatus(s.Status),
			CompanyID:          s.CompanyID,
			CompanyName:        s.CompanyName,
			Shift:              model.Shift(s.Shift),
			CreatedAt:          s.CreatedAt,
			DeactivatedByAdmin: s.DeactivatedByAdmin,
		})
	}
	return r
}

type orderCustomerDoc struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type orderRestaurantDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type orderCompanyDoc struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Shift string `json:"shift"`
}

type orderDeliveryDoc struct {
	DateMS  int64      `json:"date"`
	Address addressDoc `json:"address"`
}

type orderItemDoc struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Tags               string  `json:"tags"`
	Description        string  `json:"description"`
	Image              string  `json:"image,omitempty"`
	Quantity           int     `json:"quantity"`
	OptionalAddons     string  `json:"optionalAddons,omitempty"`
	RequiredAddons     string  `json:"requiredAddons,omitempty"`
	RemovedIngredients string  `json:"removedIngredients,omitempty"`
	Total              float64 `json:"total"`
}

type orderPaymentDoc struct {
	IntentID string  `json:"intent"`
	Amount   float64 `json:"distributed"`
}

type orderDoc struct {
	ID             string             `json:"id"`
	Customer       orderCustomerDoc   `json:"customer"`
	Restaurant     orderRestaurantDoc `json:"restaurant"`
	Company        orderCompanyDoc    `json:"company"`
	Delivery       orderDeliveryDoc   `json:"delivery"`
	Status         string             `json:"status"`
	Item           orderItemDoc       `json:"item"`
	PendingOrderID string             `json:"pendingOrderId,omitempty"`
	Payment        *orderPaymentDoc   `json:"payment,omitempty"`
	IsReviewed     bool               `json:"isReviewed,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

func orderToDoc(o *model.Order) orderDoc {
	doc := orderDoc{
		ID: o.ID,
		Customer: orderCustomerDoc{
			ID:        o.Customer.ID,
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Email:     o.Customer.Email,
		},
		Restaurant: orderRestaurantDoc{ID: o.Restaurant.ID, Name: o.Restaurant.Name},
		Company:    orderCompanyDoc{ID: o.Company.ID, Name: o.Company.Name, Shift: string(o.Company.Shift)},
		Delivery:   orderDeliveryDoc{DateMS: o.Delivery.DateMS, Address: addressToDoc(o.Delivery.Address)},
		Status:     string(o.Status),
		Item: orderItemDoc{
			ID:                 o.Item.ID,
			Name:               o.Item.Name,
			Tags:               o.Item.Tags,
			Description:        o.Item.Description,
			Image:              o.Item.Image,
			Quantity:           o.Item.Quantity,
			OptionalAddons:     o.Item.OptionalAddons,
			RequiredAddons:     o.Item.RequiredAddons,
			RemovedIngredients: o.Item.RemovedIngredients,
			Total:              o.Item.Total,
		},
		PendingOrderID: o.PendingOrderID,
		IsReviewed:     o.IsReviewed,
		CreatedAt:      o.CreatedAt,
	}
	if o.Payment != nil {
		doc.Payment = &orderPaymentDoc{IntentID: o.Payment.IntentID, Amount: o.Payment.Amount}
	}
	return doc
}

func (d orderDoc) toModel() model.Order {
	o := model.Order{
		ID: d.ID,
		Customer: model.OrderCustomer{
			ID:        d.Customer.ID,
			FirstName: d.Customer.FirstName,
			LastName:  d.Customer.LastName,
			Email:     d.Customer.Email,
		},
		Restaurant: model.OrderRestaurant{ID: d.Restaurant.ID, Name: d.Restaurant.Name},
		Company:    model.OrderCompany{ID: d.Company.ID, Name: d.Company.Name, Shift: model.Shift(d.Company.Shift)},
		Delivery:   model.OrderDelivery{DateMS: d.Delivery.DateMS, Address: d.Delivery.Address.toModel()},
		Status:     model.OrderStatus(d.Status),
		Item: model.OrderItem{
			ID:                 d.Item.ID,
			Name:               d.Item.Name,
			Tags:               d.Item.Tags,
			Description:        d.Item.Description,
			Image:              d.Item.Image,
			Quantity:           d.Item.Quantity,
			OptionalAddons:     d.Item.OptionalAddons,
			RequiredAddons:     d.Item.RequiredAddons,
			RemovedIngredients: d.Item.RemovedIngredients,
			Total:              d.Item.Total,
		},
		PendingOrderID: d.PendingOrderID,
		IsReviewed:     d.IsReviewed,
		CreatedAt:      d.CreatedAt,
	}
	if d.Payment != nil {
		o.Payment = &model.OrderPayment{IntentID: d.Payment.IntentID, Amount: d.Payment.Amount}
	}
	return o
}
