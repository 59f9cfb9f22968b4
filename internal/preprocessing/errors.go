package preprocessing

import apperrors "tabprep/internal/errors"

// Error messages surfaced verbatim in the error envelope.
const (
	MsgInvalidFillMethod    = "Invalid fill method"
	MsgInvalidScalingMethod = "Invalid scaling method"
	MsgInvalidOutlierMethod = "Invalid outlier detection method"
	MsgNoNumericForScaling  = "No numeric columns found for scaling"
	MsgNoNumericForOutliers = "No numeric columns found for outlier removal"
)

func errInvalidFillMethod() error {
	return apperrors.NewParameterError(MsgInvalidFillMethod)
}

func errInvalidScalingMethod() error {
	return apperrors.NewParameterError(MsgInvalidScalingMethod)
}

func errInvalidOutlierMethod() error {
	return apperrors.NewParameterError(MsgInvalidOutlierMethod)
}

func errNoNumericForScaling() error {
	return apperrors.NewNoNumericColumnsError(MsgNoNumericForScaling)
}

func errNoNumericForOutliers() error {
	return apperrors.NewNoNumericColumnsError(MsgNoNumericForOutliers)
}
