package utils

import (
	"errors"
	"time"

	"agendly/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateAppointmentToken creates the signed token that addresses an
// appointment on the public surface. Customers only ever see this token,
// never the sequential internal id, so bookings cannot be enumerated.
func GenerateAppointmentToken(appointmentID, tenantID, unitID string, validFor time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": appointmentID,
		"ten": tenantID,
		"uni": unitID,
		"aud": AppointmentTokenAudience,
		"iat": now.Unix(),
		"exp": now.Add(validFor).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ParseAppointmentToken validates a public appointment token and returns the
// appointment id plus the tenant/unit pair it was issued for.
func ParseAppointmentToken(tokenString string) (appointmentID, tenantID, unitID string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return "", "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", "", errors.New("invalid token claims")
	}
	if aud, _ := claims["aud"].(string); aud != AppointmentTokenAudience {
		return "", "", "", errors.New("not an appointment token")
	}
	appointmentID, _ = claims["sub"].(string)
	tenantID, _ = claims["ten"].(string)
	unitID, _ = claims["uni"].(string)
	if appointmentID == "" || tenantID == "" || unitID == "" {
		return "", "", "", errors.New("token missing appointment reference")
	}
	return appointmentID, tenantID, unitID, nil
}

// StaffClaims is what the staff auth middleware extracts from a bearer token.
type StaffClaims struct {
	SubjectID string
	TenantID  string
	UnitID    string
	Role      string
}

// ParseStaffToken validates a staff bearer token and returns its scope claims.
// Issuing these tokens is the identity provider's job, not ours.
func ParseStaffToken(tokenString string) (*StaffClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	// Public appointment tokens share the signing key and the sub/ten/uni
	// claim shape; the audience is what keeps them off the staff surface.
	if aud, _ := claims["aud"].(string); aud == AppointmentTokenAudience {
		return nil, errors.New("not a staff token")
	}
	sc := &StaffClaims{}
	sc.SubjectID, _ = claims["sub"].(string)
	sc.TenantID, _ = claims["ten"].(string)
	sc.UnitID, _ = claims["uni"].(string)
	sc.Role, _ = claims["role"].(string)
	if sc.SubjectID == "" || sc.TenantID == "" || sc.UnitID == "" {
		return nil, errors.New("token missing scope claims")
	}
	return sc, nil
}
