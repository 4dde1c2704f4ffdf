package navigation

// AppTitle is appended to every page title.
const AppTitle = "Second-hand Market Admin"

// Route names of the console.
const (
	RouteRoot           = "root"
	RouteAdminLogin     = "admin"
	RouteRegister       = "register"
	RouteProfile        = "profile"
	RoutePassword       = "password"
	RouteAddress        = "address"
	RouteUserManagement = "userManagement"
	RouteProducts       = "products"
	RouteOrders         = "orders"
	RoutePromotions     = "promotions"
	RouteFeedback       = "feedback"
	RouteAnalytics      = "analytics"
)

// DefaultRoutes returns the console's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteRoot, Path: "/", Redirect: "/dashboard"},
		{Name: RouteLogin, Path: "/login", Title: "Login"},
		{Name: RouteAdminLogin, Path: "/admin", Title: "Administrator Login"},
		{Name: RouteRegister, Path: "/register", Title: "Register"},
		{Name: RouteDashboard, Path: "/dashboard", Title: "Dashboard", RequiresAuth: true},
		{Name: RouteProfile, Path: "/profile", Title: "Profile", RequiresAuth: true},
		{Name: RoutePassword, Path: "/password", Title: "Change Password", RequiresAuth: true},
		{Name: RouteAddress, Path: "/address", Title: "Addresses", RequiresAuth: true},
		{Name: RouteUserManagement, Path: "/user-management", Title: "User Management", RequiresAuth: true, RequiresAdmin: true},
		{Name: RouteProducts, Path: "/products", Title: "Products", RequiresAuth: true, RequiresAdmin: true},
		{Name: RouteOrders, Path: "/orders", Title: "Orders", RequiresAuth: true, RequiresAdmin: true},
		{Name: RoutePromotions, Path: "/promotions", Title: "Promotions", RequiresAuth: true, RequiresAdmin: true},
		{Name: RouteFeedback, Path: "/feedback", Title: "Feedback", RequiresAuth: true, RequiresAdmin: true},
		{Name: RouteAnalytics, Path: "/analytics", Title: "Analytics", RequiresAuth: true, RequiresAdmin: true},
	}
}
