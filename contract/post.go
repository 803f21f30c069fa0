package contract

import (
	"strings"

	"comments-contract/db"
	"comments-contract/types"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

const maxBeneficiaries = 8

// openPost is a registered post still accepting votes and options.
type openPost struct {
	pool *types.RewardPool
	post *types.Post
}

func authorperm(author, permlink string) string {
	return "@" + author + "/" + permlink
}

// postIdentity reads author and permlink, which must be non-empty and free of
// the key separator.
func postIdentity(p payload) (string, string, error) {
	author, ok := p.stringField("author")
	if !ok || author == "" || strings.Contains(author, "|") {
		return "", "", validationf("invalid author")
	}
	permlink, ok := p.stringField("permlink")
	if !ok || permlink == "" || strings.Contains(permlink, "|") {
		return "", "", validationf("invalid permlink")
	}
	return author, permlink, nil
}

// openPosts returns the unpaid posts of authorperm in active pools whose
// cashout time has not been reached, in pool id order.
func (c *Contract) openPosts(ctx *Context, authorperm string) ([]openPost, error) {
	var ids []uint64
	err := ctx.Store.Iterate(types.PostAuthorpermPrefix(authorperm), "", false, func(key string, value []byte) (bool, error) {
		idx := &types.PostAuthorperm{}
		if err := db.Unmarshal(value, idx); err != nil {
			return false, err
		}
		ids = append(ids, idx.RewardPoolId)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	var open []openPost
	for _, id := range ids {
		pool, err := c.getPool(ctx, id)
		if err != nil {
			return nil, err
		}
		if pool == nil || !pool.Active {
			continue
		}
		post := &types.Post{RewardPoolId: id, Authorperm: authorperm}
		found, err := db.GetRecord(ctx.Store, post)
		if err != nil {
			return nil, err
		}
		if !found || ctx.Timestamp >= post.CashoutTime {
			continue
		}
		open = append(open, openPost{pool: pool, post: post})
	}
	return open, nil
}

// comment registers a post in every active pool it qualifies for, either the
// pools listed explicitly or the ones sharing one of its tags.
func (c *Contract) comment(ctx *Context) error {
	if !c.isRelay(ctx) {
		return nil
	}
	p, ok := parsePayload(ctx.Payload)
	if !ok {
		return validationf("invalid params")
	}
	author, permlink, err := postIdentity(p)
	if err != nil {
		return err
	}

	var pools []*types.RewardPool
	if p.has("rewardPools") {
		pools, err = c.listedPools(ctx, p)
	} else {
		pools, err = c.taggedPools(ctx, commentTags(p))
	}
	if err != nil {
		return err
	}

	ap := authorperm(author, permlink)
	for _, pool := range pools {
		if err = c.registerPost(ctx, pool, author, ap); err != nil {
			return err
		}
	}
	return nil
}

func (c *Contract) listedPools(ctx *Context, p payload) ([]*types.RewardPool, error) {
	items, ok := p.arrayField("rewardPools")
	if !ok {
		return nil, validationf("rewardPools must be an array of integers")
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, ok := asInt(item)
		if !ok {
			return nil, validationf("rewardPools must be an array of integers")
		}
		ids = append(ids, id)
	}

	var pools []*types.RewardPool
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		pool, err := c.getPool(ctx, uint64(id))
		if err != nil {
			return nil, err
		}
		if pool != nil && pool.Active {
			pools = append(pools, pool)
		}
	}
	return pools, nil
}

func (c *Contract) taggedPools(ctx *Context, tags []string) ([]*types.RewardPool, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	active, err := c.pools(ctx, true)
	if err != nil {
		return nil, err
	}
	var pools []*types.RewardPool
	for _, pool := range active {
		if pool.HasTag(tags) {
			pools = append(pools, pool)
		}
	}
	return pools, nil
}

// commentTags takes the tags field, then jsonMetadata.tags, then the parent
// permlink as the single tag of a root post.
func commentTags(p payload) []string {
	if tags := stringList(p.Get("tags")); len(tags) > 0 {
		return tags
	}
	meta := p.Get("jsonMetadata")
	if meta.ValueType() == jsoniter.StringValue {
		meta = jsoniter.Get([]byte(meta.ToString()))
	}
	if meta.ValueType() == jsoniter.ObjectValue {
		if tags := stringList(meta.Get("tags")); len(tags) > 0 {
			return tags
		}
	}
	if parent, ok := p.stringField("parentPermlink"); ok && parent != "" {
		return []string{parent}
	}
	return nil
}

func stringList(v jsoniter.Any) []string {
	items, ok := asArray(v)
	if !ok {
		return nil
	}
	var list []string
	for _, item := range items {
		if s, ok := asString(item); ok && s != "" {
			list = append(list, s)
		}
	}
	return list
}

// registerPost is idempotent and never revives a post that was already paid.
func (c *Contract) registerPost(ctx *Context, pool *types.RewardPool, author, authorperm string) error {
	post := &types.Post{RewardPoolId: pool.ID, Authorperm: authorperm}
	found, err := db.GetRecord(ctx.Store, post)
	if err != nil || found {
		return err
	}
	found, err = db.GetRecord(ctx.Store, &types.PaidPost{RewardPoolId: pool.ID, Authorperm: authorperm})
	if err != nil || found {
		return err
	}

	post.Symbol = pool.Symbol
	post.Author = author
	post.Created = ctx.Timestamp
	post.CashoutTime = ctx.Timestamp + pool.Config.CashoutWindowDays*dayMs
	post.VotePositiveRshareSum = "0"
	post.VoteRshareSum = "0"
	post.Claim = "0"
	if err = db.PutRecord(ctx.Store, post); err != nil {
		return err
	}
	if err = db.PutRecord(ctx.Store, &types.PostCashout{RewardPoolId: pool.ID, CashoutTime: post.CashoutTime, Authorperm: authorperm}); err != nil {
		return err
	}
	return db.PutRecord(ctx.Store, &types.PostAuthorperm{Authorperm: authorperm, RewardPoolId: pool.ID})
}

// commentOptions sets beneficiaries and payout declining on every open post
// of the authorperm.
func (c *Contract) commentOptions(ctx *Context) error {
	if !c.isRelay(ctx) {
		return nil
	}
	p, ok := parsePayload(ctx.Payload)
	if !ok {
		return validationf("invalid params")
	}
	author, permlink, err := postIdentity(p)
	if err != nil {
		return err
	}

	var beneficiaries []types.Beneficiary
	setBeneficiaries := p.has("beneficiaries")
	if setBeneficiaries {
		if beneficiaries, err = parseBeneficiaries(p); err != nil {
			return err
		}
	}

	decline := false
	setDecline := false
	if p.has("declinePayout") {
		if decline, ok = p.boolField("declinePayout"); !ok {
			return validationf("declinePayout must be a boolean")
		}
		setDecline = true
	}
	if p.has("maxAcceptedPayout") {
		maxPayout, err := parseMaxAcceptedPayout(p)
		if err != nil {
			return err
		}
		if maxPayout.Sign() == 0 {
			decline, setDecline = true, true
		}
	}

	open, err := c.openPosts(ctx, authorperm(author, permlink))
	if err != nil {
		return err
	}
	for _, o := range open {
		if setBeneficiaries {
			o.post.Beneficiaries = beneficiaries
		}
		if setDecline {
			o.post.DeclinePayout = decline
		}
		if err = db.PutRecord(ctx.Store, o.post); err != nil {
			return err
		}
	}
	return nil
}

func parseBeneficiaries(p payload) ([]types.Beneficiary, error) {
	items, ok := p.arrayField("beneficiaries")
	if !ok || len(items) > maxBeneficiaries {
		return nil, validationf("beneficiaries must be an array of at most %d entries", maxBeneficiaries)
	}
	var list []types.Beneficiary
	seen := make(map[string]bool, len(items))
	var total int64
	for _, item := range items {
		if item.ValueType() != jsoniter.ObjectValue {
			return nil, validationf("invalid beneficiary")
		}
		account, ok := asString(item.Get("account"))
		if !ok || account == "" || seen[account] {
			return nil, validationf("invalid beneficiary account")
		}
		weight, ok := asInt(item.Get("weight"))
		if !ok || weight < 1 || weight > MaxWeight {
			return nil, validationf("invalid beneficiary weight")
		}
		seen[account] = true
		total += weight
		list = append(list, types.Beneficiary{Account: account, Weight: weight})
	}
	if total > MaxWeight {
		return nil, validationf("beneficiary weights exceed %d", MaxWeight)
	}
	return list, nil
}

// parseMaxAcceptedPayout reads the numeric part of an asset string such as "0.000 HBD".
func parseMaxAcceptedPayout(p payload) (decimal.Decimal, error) {
	s, ok := p.stringField("maxAcceptedPayout")
	fields := strings.Fields(s)
	if !ok || len(fields) == 0 {
		return decimal.Zero, validationf("invalid maxAcceptedPayout")
	}
	d, err := decimal.NewFromString(fields[0])
	if err != nil || d.Sign() < 0 {
		return decimal.Zero, validationf("invalid maxAcceptedPayout")
	}
	return d, nil
}
