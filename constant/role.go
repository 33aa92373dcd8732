package constant

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

type Permission string

const (
	PermOrdersView     Permission = "orders.view"
	PermOrdersProcess  Permission = "orders.process"
	PermRefundsProcess Permission = "refunds.process"
	PermGiftCardManage Permission = "giftcards.manage"
	PermOrdersDeliver  Permission = "orders.deliver"
)

var RolePermissions = map[Role]map[Permission]struct{}{
	RoleUser: {},
	RoleSeller: {
		PermOrdersDeliver: {},
	},
	RoleAdmin: {
		PermOrdersView:     {},
		PermOrdersProcess:  {},
		PermRefundsProcess: {},
		PermGiftCardManage: {},
		PermOrdersDeliver:  {},
	},
}

func (r Role) Can(p Permission) bool {
	perms, ok := RolePermissions[r]
	if !ok {
		return false
	}
	_, ok = perms[p]
	return ok
}
