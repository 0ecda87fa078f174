package test

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/contract/farm"
	"github.com/meverselabs/farms/core/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Manager", func() {
	BeforeEach(func() {
		beforeEach()
	})
	AfterEach(func() {
		afterEach()
	})

	It("Appoint", func() {
		m, err := getManager()
		Expect(err).To(Succeed())
		Expect(m.Owner).To(Equal(owner))
		Expect(m.CropCount).To(BeZero())
		Expect(m.Rewarder).To(Equal(fm.RewarderAddress(manager)))
		Expect(manager).To(Equal(fm.ManagerAddress(owner, 0)))

		// every appointment is a new manager
		other, err := appoint(owner)
		Expect(err).To(Succeed())
		Expect(other).NotTo(Equal(manager))
		Expect(other).To(Equal(fm.ManagerAddress(owner, 1)))
	})

	It("Entrust", func() {
		err := exec(eve, func(cc *types.ContractContext) error {
			return fm.Entrust(cc, manager, eve)
		})
		Expect(errors.Cause(err)).To(Equal(farm.ErrOnlyOwner))

		err = exec(owner, func(cc *types.ContractContext) error {
			return fm.Entrust(cc, manager, common.ZeroAddr)
		})
		Expect(errors.Cause(err)).To(Equal(farm.ErrInvalidOwner))

		Expect(exec(owner, func(cc *types.ContractContext) error {
			return fm.Entrust(cc, manager, alice)
		})).To(Succeed())

		m, err := getManager()
		Expect(err).To(Succeed())
		Expect(m.Owner).To(Equal(alice))

		cfg := &farm.CropConfig{DepositAsset: depositAsset, RewardAsset: rewardAsset, CropParams: defaultParams()}
		_, err = cultivate(owner, cfg)
		Expect(errors.Cause(err)).To(Equal(farm.ErrOnlyOwner))
		_, err = cultivate(alice, cfg)
		Expect(err).To(Succeed())
	})

	It("unknown manager", func() {
		err := exec(owner, func(cc *types.ContractContext) error {
			_, err := fm.Manager(cc, eve)
			return err
		})
		Expect(errors.Cause(err)).To(Equal(farm.ErrManagerNotFound))
	})
})

var _ = Describe("Cultivate", func() {
	BeforeEach(func() {
		beforeEach()
	})
	AfterEach(func() {
		afterEach()
	})

	It("crops are numbered by the manager", func() {
		now = 7
		first := beforeEachCrop(defaultParams())
		second := beforeEachCrop(defaultParams())
		Expect(first).To(Equal(uint64(0)))
		Expect(second).To(Equal(uint64(1)))

		m, err := getManager()
		Expect(err).To(Succeed())
		Expect(m.CropCount).To(Equal(uint64(2)))

		c0, err := getCrop(first)
		Expect(err).To(Succeed())
		c1, err := getCrop(second)
		Expect(err).To(Succeed())
		Expect(c0.PreviousRewardTimestamp).To(Equal(uint64(7)))
		Expect(c0.RewardsPerShare).To(BeZero())
		Expect(c0.TotalDeposited).To(BeZero())

		// crops of a manager share the reward treasury of the asset
		Expect(c0.RewardTreasury).To(Equal(c1.RewardTreasury))
		Expect(c0.DepositTreasury).NotTo(Equal(c1.DepositTreasury))

		addrs := fm.Addresses(manager, first, rewardAsset)
		Expect(addrs.DepositTreasury).To(Equal(c0.DepositTreasury))
		Expect(addrs.RewardTreasury).To(Equal(c0.RewardTreasury))
		Expect(addrs.Rewarder).To(Equal(m.Rewarder))

		var crops []*farm.Crop
		Expect(exec(eve, func(cc *types.ContractContext) error {
			crops, err = fm.Crops(cc, manager)
			return err
		})).To(Succeed())
		Expect(crops).To(HaveLen(2))
		Expect(crops[1].ID).To(Equal(second))
	})

	It("a window already over never accrues", func() {
		now = 500
		params := defaultParams()
		params.EndTimestamp = 100
		id := beforeEachCrop(params)

		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.PreviousRewardTimestamp).To(Equal(uint64(100)))
		Expect(crop.PreviousRewardTimestamp).To(BeNumerically("<=", crop.EndTimestamp))

		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())
		now = 600
		Expect(pendingRewards(alice, id)).To(BeZero())

		crop, err = getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.RewardsPerShare).To(BeZero())
		Expect(crop.PreviousRewardTimestamp).To(Equal(uint64(100)))
	})

	It("invalid fee", func() {
		params := defaultParams()
		params.DepositFee = farm.RateScale + 1
		_, err := cultivate(owner, &farm.CropConfig{DepositAsset: depositAsset, RewardAsset: rewardAsset, CropParams: params})
		Expect(errors.Cause(err)).To(Equal(farm.ErrInvalidFee))

		params = defaultParams()
		params.WithdrawFee = farm.RateScale + 1
		_, err = cultivate(owner, &farm.CropConfig{DepositAsset: depositAsset, RewardAsset: rewardAsset, CropParams: params})
		Expect(errors.Cause(err)).To(Equal(farm.ErrInvalidFee))

		m, err := getManager()
		Expect(err).To(Succeed())
		Expect(m.CropCount).To(BeZero())
	})

	It("unknown asset", func() {
		_, err := cultivate(owner, &farm.CropConfig{DepositAsset: depositAsset, RewardAsset: eve, CropParams: defaultParams()})
		Expect(errors.Cause(err)).To(Equal(farm.ErrUnknownAsset))
	})

	It("Recultivate does not touch the accumulator", func() {
		id := beforeEachCrop(defaultParams())
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())

		now = 10
		err := exec(eve, func(cc *types.ContractContext) error {
			return fm.Recultivate(cc, manager, id, &farm.CropParams{RewardRate: 1})
		})
		Expect(errors.Cause(err)).To(Equal(farm.ErrOnlyOwner))
		err = exec(owner, func(cc *types.ContractContext) error {
			return fm.Recultivate(cc, manager, id, &farm.CropParams{WithdrawFee: farm.RateScale + 1})
		})
		Expect(errors.Cause(err)).To(Equal(farm.ErrInvalidFee))

		Expect(exec(owner, func(cc *types.ContractContext) error {
			return fm.Recultivate(cc, manager, id, &farm.CropParams{RewardRate: 2000, EndTimestamp: _EndTimestamp})
		})).To(Succeed())

		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.RewardRate).To(Equal(uint64(2000)))
		Expect(crop.RewardsPerShare).To(BeZero())
		Expect(crop.PreviousRewardTimestamp).To(BeZero())

		// the new rate applies from the last accrual
		Expect(pendingRewards(alice, id)).To(Equal(uint64(20000)))
	})

	It("a shortened window keeps the timestamp", func() {
		id := beforeEachCrop(defaultParams())
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())

		now = 50
		Expect(uproot(alice, id, 0)).To(Succeed())
		Expect(exec(owner, func(cc *types.ContractContext) error {
			return fm.Recultivate(cc, manager, id, &farm.CropParams{RewardRate: _RewardRate, EndTimestamp: 20})
		})).To(Succeed())

		now = 60
		Expect(uproot(alice, id, 0)).To(Succeed())
		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.PreviousRewardTimestamp).To(Equal(uint64(50)))
		Expect(crop.RewardsPerShare).To(Equal(uint64(50000)))
	})
})

var _ = Describe("Plot", func() {
	var id uint64

	BeforeEach(func() {
		beforeEach()
		id = beforeEachCrop(defaultParams())
	})
	AfterEach(func() {
		afterEach()
	})

	It("Till", func() {
		err := sow(alice, id, 100)
		Expect(errors.Cause(err)).To(Equal(farm.ErrPlotNotFound))

		Expect(till(alice, id)).To(Succeed())
		err = till(alice, id)
		Expect(errors.Cause(err)).To(Equal(farm.ErrPlotExists))

		plot, err := getPlot(alice, id)
		Expect(err).To(Succeed())
		Expect(plot.Amount).To(BeZero())
		Expect(plot.Debt).To(BeZero())

		err = till(alice, id+1)
		Expect(errors.Cause(err)).To(Equal(farm.ErrCropNotFound))
	})

	It("Sow checks", func() {
		Expect(till(alice, id)).To(Succeed())
		Expect(till(eve, id)).To(Succeed())

		err := sow(alice, id, 0)
		Expect(errors.Cause(err)).To(Equal(farm.ErrAmountIsZero))

		err = sow(eve, id, 1)
		Expect(errors.Cause(err)).To(Equal(farm.ErrInsufficientFunds))

		err = sow(alice, id, _InitialBalance+1)
		Expect(errors.Cause(err)).To(Equal(farm.ErrInsufficientFunds))

		err = uproot(alice, id, 1)
		Expect(errors.Cause(err)).To(Equal(farm.ErrAmountIsTooLarge))
	})

	It("scenario: one farmer for ten seconds", func() {
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())

		now = 10
		Expect(pendingRewards(alice, id)).To(Equal(uint64(10000)))
		Expect(uproot(alice, id, 1_000_000_000)).To(Succeed())

		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.RewardsPerShare).To(Equal(uint64(10000)))
		Expect(crop.TotalDeposited).To(BeZero())
		Expect(balanceOf(rewardAsset, alice)).To(Equal(uint64(10000)))
		Expect(balanceOf(depositAsset, alice)).To(Equal(_InitialBalance))
		Expect(balanceOf(depositAsset, crop.DepositTreasury)).To(BeZero())

		plot, err := getPlot(alice, id)
		Expect(err).To(Succeed())
		Expect(plot.Amount).To(BeZero())
		Expect(plot.Debt).To(BeZero())
	})

	It("round trip with fees", func() {
		params := defaultParams()
		params.RewardRate = 0
		params.DepositFee = 50_000_000
		params.WithdrawFee = 10_000_000
		Expect(exec(owner, func(cc *types.ContractContext) error {
			return fm.Recultivate(cc, manager, id, &params)
		})).To(Succeed())

		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1000)).To(Succeed())
		plot, err := getPlot(alice, id)
		Expect(err).To(Succeed())
		Expect(plot.Amount).To(Equal(uint64(950)))

		Expect(uproot(alice, id, plot.Amount)).To(Succeed())
		// 50 on the way in, floor(950 * 1%) = 9 on the way out
		Expect(balanceOf(depositAsset, alice)).To(Equal(_InitialBalance - 50 - 9))
		Expect(balanceOf(rewardAsset, alice)).To(BeZero())

		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.AccruedFees).To(Equal(uint64(59)))
		Expect(balanceOf(depositAsset, crop.DepositTreasury)).To(Equal(uint64(59)))

		_, err = collect(eve, id, eve)
		Expect(errors.Cause(err)).To(Equal(farm.ErrOnlyOwner))

		fees, err := collect(owner, id, common.ZeroAddr)
		Expect(err).To(Succeed())
		Expect(fees).To(Equal(uint64(59)))
		Expect(balanceOf(depositAsset, owner)).To(Equal(uint64(59)))

		crop, err = getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.AccruedFees).To(BeZero())
		Expect(balanceOf(depositAsset, crop.DepositTreasury)).To(BeZero())

		// nothing left to collect
		fees, err = collect(owner, id, eve)
		Expect(err).To(Succeed())
		Expect(fees).To(BeZero())
	})

	It("collect to a destination", func() {
		params := defaultParams()
		params.DepositFee = 100_000_000
		Expect(exec(owner, func(cc *types.ContractContext) error {
			return fm.Recultivate(cc, manager, id, &params)
		})).To(Succeed())
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1000)).To(Succeed())

		now = 500
		fees, err := collect(owner, id, eve)
		Expect(err).To(Succeed())
		Expect(fees).To(Equal(uint64(100)))
		Expect(balanceOf(depositAsset, eve)).To(Equal(uint64(100)))

		// collecting does not accrue
		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.PreviousRewardTimestamp).To(BeZero())
	})

	It("an empty crop accrues nothing", func() {
		now = 50
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())

		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.RewardsPerShare).To(BeZero())
		Expect(crop.PreviousRewardTimestamp).To(Equal(uint64(50)))

		now = 60
		Expect(pendingRewards(alice, id)).To(Equal(uint64(10000)))
	})

	It("rewards are shared by the deposits", func() {
		Expect(till(alice, id)).To(Succeed())
		Expect(till(bob, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())

		now = 10
		Expect(sow(bob, id, 3_000_000_000)).To(Succeed())
		Expect(balanceOf(rewardAsset, bob)).To(BeZero())

		now = 20
		Expect(pendingRewards(alice, id)).To(Equal(uint64(12500)))
		Expect(pendingRewards(bob, id)).To(Equal(uint64(7500)))

		// sowing again pays the pending rewards first
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())
		Expect(balanceOf(rewardAsset, alice)).To(Equal(uint64(12500)))
		Expect(pendingRewards(alice, id)).To(BeZero())

		plot, err := getPlot(alice, id)
		Expect(err).To(Succeed())
		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		debt, err := farm.RewardDebt(crop.RewardsPerShare, plot.Amount)
		Expect(err).To(Succeed())
		Expect(plot.Debt).To(Equal(debt))

		// the debt floors the product, not the amount
		Expect(sow(bob, id, 1_234_567)).To(Succeed())
		plot, err = getPlot(bob, id)
		Expect(err).To(Succeed())
		crop, err = getCrop(id)
		Expect(err).To(Succeed())
		debt, err = farm.RewardDebt(crop.RewardsPerShare, plot.Amount)
		Expect(err).To(Succeed())
		Expect(plot.Debt).To(Equal(debt))
		Expect(plot.Debt).NotTo(Equal(plot.Amount / farm.RewardScale * crop.RewardsPerShare))
	})

	It("claim only", func() {
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())

		now = 5
		Expect(uproot(alice, id, 0)).To(Succeed())
		Expect(balanceOf(rewardAsset, alice)).To(Equal(uint64(5000)))

		plot, err := getPlot(alice, id)
		Expect(err).To(Succeed())
		Expect(plot.Amount).To(Equal(uint64(1_000_000_000)))
		Expect(pendingRewards(alice, id)).To(BeZero())
	})

	It("emission stops at the end", func() {
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1_000_000_000)).To(Succeed())

		now = _EndTimestamp + 100
		Expect(pendingRewards(alice, id)).To(Equal(_EndTimestamp * _RewardRate))
		Expect(uproot(alice, id, 0)).To(Succeed())

		now = _EndTimestamp + 1000
		Expect(pendingRewards(alice, id)).To(BeZero())
		crop, err := getCrop(id)
		Expect(err).To(Succeed())
		Expect(crop.PreviousRewardTimestamp).To(Equal(_EndTimestamp))

		// exhausted crops still return the principal
		Expect(uproot(alice, id, 1_000_000_000)).To(Succeed())
		Expect(balanceOf(depositAsset, alice)).To(Equal(_InitialBalance))
	})

	It("pause stops sowing only", func() {
		Expect(till(alice, id)).To(Succeed())
		Expect(sow(alice, id, 1000)).To(Succeed())

		err := exec(eve, func(cc *types.ContractContext) error {
			return fm.SetPaused(cc, manager, id, true)
		})
		Expect(errors.Cause(err)).To(Equal(farm.ErrOnlyOwner))
		Expect(exec(owner, func(cc *types.ContractContext) error {
			return fm.SetPaused(cc, manager, id, true)
		})).To(Succeed())

		err = sow(alice, id, 1000)
		Expect(errors.Cause(err)).To(Equal(farm.ErrPaused))
		Expect(uproot(alice, id, 500)).To(Succeed())

		Expect(exec(owner, func(cc *types.ContractContext) error {
			return fm.SetPaused(cc, manager, id, false)
		})).To(Succeed())
		Expect(sow(alice, id, 1000)).To(Succeed())
	})

	It("a failed payout changes nothing", func() {
		other, err := cultivate(owner, &farm.CropConfig{DepositAsset: depositAsset, RewardAsset: depositAsset, CropParams: defaultParams()})
		Expect(err).To(Succeed())
		Expect(till(alice, other)).To(Succeed())
		Expect(sow(alice, other, 1_000_000_000)).To(Succeed())
		before, err := getCrop(other)
		Expect(err).To(Succeed())

		// the reward treasury of the deposit asset is empty
		now = 10
		err = uproot(alice, other, 0)
		Expect(err).To(HaveOccurred())

		after, err := getCrop(other)
		Expect(err).To(Succeed())
		Expect(after).To(Equal(before))
		plot, err := getPlot(alice, other)
		Expect(err).To(Succeed())
		Expect(plot.Amount).To(Equal(uint64(1_000_000_000)))
		Expect(balanceOf(depositAsset, alice)).To(Equal(_InitialBalance - 1_000_000_000))
	})
})

var _ = Describe("Invariants", func() {
	var id uint64

	BeforeEach(func() {
		beforeEach()
		params := defaultParams()
		params.DepositFee = 3_000_000
		params.WithdrawFee = 7_000_000
		id = beforeEachCrop(params)
	})
	AfterEach(func() {
		afterEach()
	})

	It("holds across a sequence of operations", func() {
		farmers := []common.Address{alice, bob}
		for _, f := range farmers {
			Expect(till(f, id)).To(Succeed())
		}
		type step struct {
			at     uint64
			farmer common.Address
			sow    bool
			amount uint64
		}
		steps := []step{
			{1, alice, true, 123_456_789},
			{3, bob, true, 987_654_321},
			{3, alice, false, 0},
			{7, bob, false, 500_000_000},
			{11, alice, true, 5},
			{13, bob, true, 2_000_000_000},
			{17, alice, false, 100_000_000},
			{19, bob, false, 0},
			{23, bob, false, 1_000_000_000},
			{29, alice, true, 777},
		}

		var lastRPS, paid uint64
		for _, s := range steps {
			now = s.at
			if s.sow {
				Expect(sow(s.farmer, id, s.amount)).To(Succeed())
			} else {
				Expect(uproot(s.farmer, id, s.amount)).To(Succeed())
			}

			crop, err := getCrop(id)
			Expect(err).To(Succeed())
			Expect(crop.RewardsPerShare).To(BeNumerically(">=", lastRPS))
			lastRPS = crop.RewardsPerShare

			var sum uint64
			for _, f := range farmers {
				plot, err := getPlot(f, id)
				Expect(err).To(Succeed())
				sum += plot.Amount
			}
			Expect(crop.TotalDeposited).To(Equal(sum))
			Expect(balanceOf(depositAsset, crop.DepositTreasury)).To(Equal(crop.TotalDeposited + crop.AccruedFees))
		}

		for _, f := range farmers {
			paid += balanceOf(rewardAsset, f)
		}
		// rounding never pays more than was emitted
		Expect(paid).To(BeNumerically("<=", 29*_RewardRate))
	})
})
