package farm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meverselabs/farms/common/fixed"
)

func TestCalculateFee(t *testing.T) {
	fee, err := CalculateFee(50_000_000, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), fee)

	fee, err = CalculateFee(RateScale, math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), fee)

	// rounds down
	fee, err = CalculateFee(1, 999_999_999)
	require.NoError(t, err)
	assert.Zero(t, fee)

	_, err = CalculateFee(math.MaxUint64, math.MaxUint64)
	assert.ErrorIs(t, err, ErrNumericalOverflow)
}

func TestAssertValidFee(t *testing.T) {
	assert.NoError(t, AssertValidFee(0))
	assert.NoError(t, AssertValidFee(RateScale))
	assert.ErrorIs(t, AssertValidFee(RateScale+1), ErrInvalidFee)
}

func newTestCrop() *Crop {
	return &Crop{
		CropParams: CropParams{
			RewardRate:   1000,
			EndTimestamp: 100,
		},
		TotalDeposited: 1_000_000_000,
	}
}

func TestUpdateCrop(t *testing.T) {
	crop := newTestCrop()
	require.NoError(t, UpdateCrop(crop, 10))
	assert.Equal(t, uint64(10000), crop.RewardsPerShare)
	assert.Equal(t, uint64(10), crop.PreviousRewardTimestamp)

	// same instant
	require.NoError(t, UpdateCrop(crop, 10))
	assert.Equal(t, uint64(10000), crop.RewardsPerShare)
	assert.Equal(t, uint64(10), crop.PreviousRewardTimestamp)

	// clock went back
	require.NoError(t, UpdateCrop(crop, 5))
	assert.Equal(t, uint64(10000), crop.RewardsPerShare)
	assert.Equal(t, uint64(10), crop.PreviousRewardTimestamp)
}

func TestUpdateCropFloorsOnce(t *testing.T) {
	crop := newTestCrop()
	crop.RewardRate = 7
	crop.TotalDeposited = 3
	require.NoError(t, UpdateCrop(crop, 10))

	// 10 * 7 * 1e9 / 3, a single floor over the whole product
	assert.Equal(t, uint64(23_333_333_333), crop.RewardsPerShare)
	want, err := fixed.MulMulDiv(10, 7, RewardScale, 3)
	require.NoError(t, err)
	assert.Equal(t, want, crop.RewardsPerShare)
}

func TestUpdateCropEmpty(t *testing.T) {
	crop := newTestCrop()
	crop.TotalDeposited = 0
	require.NoError(t, UpdateCrop(crop, 50))
	assert.Zero(t, crop.RewardsPerShare)
	assert.Equal(t, uint64(50), crop.PreviousRewardTimestamp)
}

func TestUpdateCropAfterEnd(t *testing.T) {
	crop := newTestCrop()
	require.NoError(t, UpdateCrop(crop, 150))
	assert.Equal(t, uint64(100_000), crop.RewardsPerShare)
	assert.Equal(t, uint64(100), crop.PreviousRewardTimestamp)

	require.NoError(t, UpdateCrop(crop, 200))
	assert.Equal(t, uint64(100_000), crop.RewardsPerShare)
	assert.Equal(t, uint64(100), crop.PreviousRewardTimestamp)
}

func TestUpdateCropShortenedWindow(t *testing.T) {
	crop := newTestCrop()
	crop.PreviousRewardTimestamp = 50
	crop.EndTimestamp = 20
	require.NoError(t, UpdateCrop(crop, 60))
	assert.Zero(t, crop.RewardsPerShare)
	assert.Equal(t, uint64(50), crop.PreviousRewardTimestamp)
}

func TestUpdateCropOverflow(t *testing.T) {
	crop := newTestCrop()
	crop.RewardRate = math.MaxUint64
	crop.EndTimestamp = math.MaxUint64
	before := crop.Clone()

	// elapsed * rate * scale does not fit 128 bits
	err := UpdateCrop(crop, 1<<40)
	assert.ErrorIs(t, err, ErrNumericalOverflow)
	assert.Equal(t, before, crop)

	// the quotient does not fit 64 bits
	crop.TotalDeposited = 1
	crop.RewardRate = 1 << 62
	err = UpdateCrop(crop, 10)
	assert.ErrorIs(t, err, ErrNumericalOverflow)
	assert.Zero(t, crop.RewardsPerShare)
	assert.Zero(t, crop.PreviousRewardTimestamp)
}

func TestPlotRewards(t *testing.T) {
	crop := newTestCrop()
	crop.RewardsPerShare = 10000
	plot := &Plot{Amount: 1_000_000_000}

	rewards, err := PlotRewards(crop, plot)
	require.NoError(t, err)
	assert.Equal(t, uint64(10000), rewards)

	debt, err := RewardDebt(crop.RewardsPerShare, plot.Amount)
	require.NoError(t, err)
	plot.Debt = debt
	rewards, err = PlotRewards(crop, plot)
	require.NoError(t, err)
	assert.Zero(t, rewards)

	plot.Debt++
	_, err = PlotRewards(crop, plot)
	assert.ErrorIs(t, err, ErrNumericalOverflow)
}

func TestRewardDebtRoundsDown(t *testing.T) {
	debt, err := RewardDebt(3, 333_333_333)
	require.NoError(t, err)
	assert.Zero(t, debt)

	debt, err = RewardDebt(3, 333_333_334)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), debt)
}
