package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Restaurants() RestaurantRepository
	Orders() OrderRepository
	Discounts() DiscountRepository
}
