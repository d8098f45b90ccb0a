// File: utils/constants.go
package utils

// AvailabilityCachePrefix is the prefix used for Redis availability snapshot keys.
const AvailabilityCachePrefix = "avail:"

// AppointmentTokenAudience tags signed public appointment tokens.
const AppointmentTokenAudience = "appointment"
