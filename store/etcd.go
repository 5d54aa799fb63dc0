package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
)

const (
	// etcd rejects transactions with more than 128 operations by default.
	etcdMaxTxnOps  = 128
	etcdMemberPage = 5000
)

// Etcd keeps records under KeyPrefix and marks membership with empty keys
// below MembersKey + "/".
type Etcd struct {
	cli *clientv3.Client
}

func NewEtcd(cli *clientv3.Client) *Etcd {
	return &Etcd{cli: cli}
}

// DialEtcd connects to the cluster. The returned client is closed by Etcd.Close.
func DialEtcd(endpoints []string, dialTimeout time.Duration, logger *zap.Logger) (*clientv3.Client, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("dialing etcd %v: %w", endpoints, err)
	}
	return cli, nil
}

func memberKey(id string) string {
	return MembersKey + "/" + id
}

func (e *Etcd) Get(ctx context.Context, id string) ([]byte, error) {
	resp, err := e.cli.Get(ctx, RecordKey(id))
	if err != nil {
		return nil, fmt.Errorf("etcd get %s: %w", id, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrNotFound
	}
	return resp.Kvs[0].Value, nil
}

func (e *Etcd) GetMany(ctx context.Context, ids []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(ids))
	for _, chunk := range chunks(ids, etcdMaxTxnOps) {
		ops := make([]clientv3.Op, len(chunk))
		for i, id := range chunk {
			ops[i] = clientv3.OpGet(RecordKey(id))
		}
		resp, err := e.cli.Txn(ctx).Then(ops...).Commit()
		if err != nil {
			return nil, fmt.Errorf("etcd txn get %d keys: %w", len(chunk), err)
		}
		for i, r := range resp.Responses {
			rr := r.GetResponseRange()
			if rr != nil && len(rr.Kvs) > 0 {
				out[chunk[i]] = rr.Kvs[0].Value
			}
		}
	}
	return out, nil
}

func (e *Etcd) PutMany(ctx context.Context, records []Record) error {
	// two ops per record
	for _, chunk := range chunks(records, etcdMaxTxnOps/2) {
		ops := make([]clientv3.Op, 0, 2*len(chunk))
		for _, rec := range chunk {
			ops = append(ops,
				clientv3.OpPut(RecordKey(rec.ID), string(rec.Data)),
				clientv3.OpPut(memberKey(rec.ID), ""))
		}
		if _, err := e.cli.Txn(ctx).Then(ops...).Commit(); err != nil {
			return fmt.Errorf("etcd txn put %d records: %w", len(chunk), err)
		}
	}
	return nil
}

func (e *Etcd) Count(ctx context.Context) (int64, error) {
	resp, err := e.cli.Get(ctx, memberKey(""), clientv3.WithPrefix(), clientv3.WithCountOnly())
	if err != nil {
		return 0, fmt.Errorf("etcd count: %w", err)
	}
	return resp.Count, nil
}

// Members pages through the membership keys in key order.
func (e *Etcd) Members(ctx context.Context) ([]string, error) {
	prefix := memberKey("")
	end := clientv3.GetPrefixRangeEnd(prefix)
	var ids []string
	for key := prefix; ; {
		resp, err := e.cli.Get(ctx, key,
			clientv3.WithRange(end), clientv3.WithKeysOnly(), clientv3.WithLimit(etcdMemberPage))
		if err != nil {
			return nil, fmt.Errorf("etcd list members: %w", err)
		}
		for _, kv := range resp.Kvs {
			ids = append(ids, strings.TrimPrefix(string(kv.Key), prefix))
		}
		if !resp.More || len(resp.Kvs) == 0 {
			return ids, nil
		}
		key = string(resp.Kvs[len(resp.Kvs)-1].Key) + "\x00"
	}
}

func (e *Etcd) Ping(ctx context.Context) error {
	_, err := e.cli.Get(ctx, MembersKey, clientv3.WithCountOnly())
	return err
}

func (e *Etcd) Close() error {
	return e.cli.Close()
}
