package domain

// Route names a screen of the storefront.
type Route string

const (
	RouteAccess     Route = "/"
	RouteProducts   Route = "/products"
	RouteManagement Route = "/manage"
)
