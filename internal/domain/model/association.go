package model

// Association describes whether an account is linked to a provider, for the
// account settings page of the host.
type Association struct {
	Associated bool   `json:"associated"`
	URL        string `json:"url"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
}

// NewLinkedAssociation points at the provider profile of the linked user.
func NewLinkedAssociation(provider Provider, username string) Association {
	return Association{
		Associated: true,
		URL:        provider.ProfileURL(username),
		Name:       provider.Name(),
		Icon:       provider.Icon(),
	}
}

// NewUnlinkedAssociation points at the login-initiation URL.
func NewUnlinkedAssociation(provider Provider, siteURL string) Association {
	return Association{
		Associated: false,
		URL:        provider.LoginURL(siteURL),
		Name:       provider.Name(),
		Icon:       provider.Icon(),
	}
}

// Strategy is the login option contributed to the host's strategy list.
type Strategy struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	CallbackURL string `json:"callbackURL"`
	Icon        string `json:"icon"`
	Scope       string `json:"scope"`
}

// NewStrategy builds the strategy descriptor for a provider. The scope is
// empty: only the basic profile is requested.
func NewStrategy(provider Provider) Strategy {
	return Strategy{
		Name:        provider.Key(),
		URL:         provider.LoginPath(),
		CallbackURL: provider.CallbackPath(),
		Icon:        provider.Icon(),
		Scope:       "",
	}
}

// AdminMenuItem is an entry of the admin navigation.
type AdminMenuItem struct {
	Route string `json:"route"`
	Icon  string `json:"icon"`
	Name  string `json:"name"`
}

// NewAdminMenuItem builds the admin navigation entry for a provider.
func NewAdminMenuItem(provider Provider) AdminMenuItem {
	return AdminMenuItem{
		Route: provider.AdminRoute(),
		Icon:  provider.Icon(),
		Name:  provider.Name(),
	}
}
