package devserver

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteFunc("POST "+APIPrefix+"/auth/login/", ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+APIPrefix+"/auth/refresh/", ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+APIPrefix+"/auth/logout/", ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+APIPrefix+"/auth/verify/", ChainMiddleware(s.VerifyHandler(), s.APIMiddleware(s.RequireAuth())...))

	// USERS
	s.RegisterRouteFunc("GET "+APIPrefix+"/users/{$}", ChainMiddleware(s.UsersListHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("POST "+APIPrefix+"/users/{$}", ChainMiddleware(s.UserCreateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("GET "+APIPrefix+"/users/profile/", ChainMiddleware(s.ProfileHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("GET "+APIPrefix+"/users/{id}/", ChainMiddleware(s.UserGetHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("PATCH "+APIPrefix+"/users/{id}/", ChainMiddleware(s.UserUpdateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("DELETE "+APIPrefix+"/users/{id}/", ChainMiddleware(s.UserDeleteHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	// ROLES
	s.RegisterRouteFunc("GET "+APIPrefix+"/roles/{$}", ChainMiddleware(s.RolesListHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("POST "+APIPrefix+"/roles/{$}", ChainMiddleware(s.RoleCreateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("POST "+APIPrefix+"/roles/assign/", ChainMiddleware(s.RoleAssignHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("GET "+APIPrefix+"/roles/{id}/", ChainMiddleware(s.RoleGetHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("DELETE "+APIPrefix+"/roles/{id}/", ChainMiddleware(s.RoleDeleteHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	// ORGANIZATIONS
	s.RegisterRouteFunc("GET "+APIPrefix+"/organizations/{$}", ChainMiddleware(s.OrganizationsListHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("POST "+APIPrefix+"/organizations/{$}", ChainMiddleware(s.OrganizationCreateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("GET "+APIPrefix+"/organizations/{id}/", ChainMiddleware(s.OrganizationGetHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("PUT "+APIPrefix+"/organizations/{id}/", ChainMiddleware(s.OrganizationUpdateHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))
	s.RegisterRouteFunc("DELETE "+APIPrefix+"/organizations/{id}/", ChainMiddleware(s.OrganizationDeleteHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())...))

	s.RegisterRouteFunc("/", ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...))
}
