package access

type Capability string

const (
	CapMealLog       Capability = "meal_log"
	CapHydration     Capability = "hydration"
	CapWeight        Capability = "weight"
	CapPhotoAnalysis Capability = "photo_analysis"
	CapAIMealPlan    Capability = "ai_meal_plan"
	CapRooms         Capability = "rooms"
	CapAssignPlans   Capability = "assign_plans"
)
