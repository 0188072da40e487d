package server

// indexPage 内置上传页：选择四个工作簿和可选附件，SSE 展示进度
const indexPage = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>出货单生成器</title>
<style>
  body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; color: #1f2937; }
  h1 { text-align: center; }
  label { display: block; margin: 1rem 0 0.25rem; font-weight: bold; }
  #status { margin-top: 1rem; white-space: pre-line; color: #6b7280; }
  button { margin-top: 1.5rem; width: 100%; padding: 0.6rem; background: #7c3aed; color: #fff; border: 0; border-radius: 0.4rem; }
</style>
</head>
<body>
<h1>出货单生成器</h1>
<form id="f">
  <label>订单表（入库单明细）</label><input type="file" name="main" accept=".xlsx,.xls" required>
  <label>SKU对应货品ID表</label><input type="file" name="sku_id" accept=".xlsx,.xls" required>
  <label>供应商SKU表</label><input type="file" name="supplier" accept=".xlsx,.xls" required>
  <label>SKU对应商品名称表</label><input type="file" name="sku_name" accept=".xlsx,.xls" required>
  <label>条码PDF（可多选）</label><input type="file" name="barcodes" accept=".pdf" multiple>
  <label>商品图片（可多选）</label><input type="file" name="images" accept=".jpg,.jpeg,.png,.gif,.bmp,.webp" multiple>
  <button type="submit">开始生成</button>
</form>
<div id="status"></div>
<script>
const form = document.getElementById('f');
const status = document.getElementById('status');
form.addEventListener('submit', async (e) => {
  e.preventDefault();
  status.textContent = '上传中...';
  const resp = await fetch('/api/generate', { method: 'POST', body: new FormData(form) });
  if (!resp.ok) {
    const err = await resp.json().catch(() => ({}));
    status.textContent = '失败: ' + (err.error || resp.status);
    return;
  }
  const reader = resp.body.getReader();
  const decoder = new TextDecoder();
  let buffer = '';
  for (;;) {
    const { done, value } = await reader.read();
    if (done) break;
    buffer += decoder.decode(value, { stream: true });
    const events = buffer.split('\n\n');
    buffer = events.pop();
    for (const raw of events) {
      if (!raw.startsWith('data: ')) continue;
      const ev = JSON.parse(raw.slice(6));
      status.textContent = ev.message;
      if (ev.type === 'done') {
        window.location.href = '/api/download/' + ev.data.token;
      }
    }
  }
});
</script>
</body>
</html>
`
