package service

// Services bundles one client per backend resource, all sharing a transport.
type Services struct {
	Students *StudentService
	Teachers *TeacherService
	Classes  *ClassService
	Checkins *CheckinService
	Payments *PaymentService
	Expenses *ExpenseService
	Belts    *BeltService
	Videos   *VideoService
	Modules  *ModuleService
	Auth     *AuthService
}

// NewServices wires every resource service onto the given transport.
func NewServices(api apiClient) *Services {
	return &Services{
		Students: NewStudentService(api),
		Teachers: NewTeacherService(api),
		Classes:  NewClassService(api),
		Checkins: NewCheckinService(api),
		Payments: NewPaymentService(api),
		Expenses: NewExpenseService(api),
		Belts:    NewBeltService(api),
		Videos:   NewVideoService(api),
		Modules:  NewModuleService(api),
		Auth:     NewAuthService(api),
	}
}
