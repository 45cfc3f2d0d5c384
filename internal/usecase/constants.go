package usecase

// DueDay is the day of the month rent falls due.
const DueDay = 10

// ExportVersion is the version stamp of the portability document.
const ExportVersion = "1.0.0"

// VacantPlaceholder labels report rows for properties without a tenant.
const VacantPlaceholder = "Sin inquilino"
